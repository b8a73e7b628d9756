package parser

import "github.com/shapestone/yamlcore/internal/scanner"

// composer walks an event stream and folds it into a single Value tree.
//
// Grounded on spec.md §4.5 and original_source/src/compose.rs, adapted to
// Go's interface-as-sum-type ValueData and to this implementation's
// one-document-per-parse semantics (see DESIGN.md Open Question decisions).
type composer struct {
	events []Event
	idx    int
}

func (c *composer) peek() Event {
	return c.events[c.idx]
}

func (c *composer) next() Event {
	e := c.events[c.idx]
	c.idx++
	return e
}

// Compose builds a Value tree from a well-formed event stream, as produced
// by ParseToEvents. A second DocumentStart before StreamEnd raises
// NoSupportMultipleDocuments, per spec.md §4.5.
func Compose(events []Event) (*Value, error) {
	c := &composer{events: events}
	if len(c.events) == 0 {
		return nil, NewError(Bug, scanner.Start, "empty event stream")
	}
	if _, ok := c.next().Data.(StreamStartData); !ok {
		return nil, NewError(Bug, c.events[0].Start, "expected StreamStart as the first event")
	}

	var result *Value
	docsSeen := 0
	for c.idx < len(c.events) {
		e := c.peek()
		switch e.Data.(type) {
		case StreamEndData:
			c.next()
			if result == nil {
				return &Value{Data: NullData{}, Start: scanner.EOF, End: scanner.EOF}, nil
			}
			return result, nil
		case DocumentStartData:
			docsSeen++
			if docsSeen > 1 {
				return nil, NewError(NoSupportMultipleDocuments, e.Start, "input contains more than one document")
			}
			c.next()
			// A document with no node at all (empty input) composes to Null.
			switch c.peek().Data.(type) {
			case DocumentEndData, StreamEndData:
				result = &Value{Data: NullData{}, Start: e.Start, End: e.Start}
			default:
				v, err := c.composeNode()
				if err != nil {
					return nil, err
				}
				result = v
			}
			if _, ok := c.peek().Data.(DocumentEndData); ok {
				c.next()
			}
		default:
			return nil, NewError(Bug, e.Start, "unexpected event %T at document boundary", e.Data)
		}
	}
	if result == nil {
		return &Value{Data: NullData{}, Start: scanner.EOF, End: scanner.EOF}, nil
	}
	return result, nil
}

// composeNode composes the single node starting at the composer's current
// position, consuming its matching End event if it is a container.
func (c *composer) composeNode() (*Value, error) {
	e := c.next()
	switch d := e.Data.(type) {
	case ScalarEventData:
		var data ValueData = ScalarData{Text: d.Text}
		if d.Tag != nil {
			data = TagData{Name: *d.Tag, Data: data}
		}
		return &Value{Data: data, Start: e.Start, End: e.End}, nil

	case SequenceStartData:
		var items []*Value
		for {
			if _, ok := c.peek().Data.(SequenceEndData); ok {
				break
			}
			v, err := c.composeNode()
			if err != nil {
				return nil, err
			}
			items = append(items, v)
		}
		end := c.next()
		var data ValueData = SequenceData{Items: items}
		if d.Tag != nil {
			data = TagData{Name: *d.Tag, Data: data}
		}
		return &Value{Data: data, Start: e.Start, End: end.Start}, nil

	case MapStartData:
		m := NewOrderedMap()
		for {
			if _, ok := c.peek().Data.(MapEndData); ok {
				break
			}
			key, err := c.composeNode()
			if err != nil {
				return nil, err
			}
			val, err := c.composeNode()
			if err != nil {
				return nil, err
			}
			m.Set(key, val)
		}
		end := c.next()
		var data ValueData = MapData{Map: m}
		if d.Tag != nil {
			data = TagData{Name: *d.Tag, Data: data}
		}
		return &Value{Data: data, Start: e.Start, End: end.Start}, nil

	default:
		return nil, NewError(Bug, e.Start, "unexpected event %T where a node was expected", e.Data)
	}
}
