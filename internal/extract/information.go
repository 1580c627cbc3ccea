package extract

// Item is one labeled line nested under an Entry.
type Item struct {
	Label string
	Text  string
}

// Entry is the decoded form of one field.
type Entry struct {
	Label    string
	Text     string
	Contents []Item
}

// Information maps field names to entries and remembers the order in which
// fields were added.
type Information struct {
	order   []string
	entries map[string]Entry
}

func newInformation() *Information {
	return &Information{entries: make(map[string]Entry)}
}

// Fields returns the field names in insertion order.
func (in *Information) Fields() []string {
	return in.order
}

// Get returns the entry stored for field.
func (in *Information) Get(field string) (Entry, bool) {
	e, ok := in.entries[field]
	return e, ok
}

// Len reports the number of fields.
func (in *Information) Len() int {
	return len(in.order)
}

func (in *Information) set(field string, e Entry) {
	if _, ok := in.entries[field]; !ok {
		in.order = append(in.order, field)
	}
	in.entries[field] = e
}

func (in *Information) setContents(field string, items []Item) {
	e := in.entries[field]
	e.Contents = items
	in.set(field, e)
}
