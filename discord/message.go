package discord

/* Discord incoming-webhook message types
 * Only the parts of the embed object this service sends are modeled
 */

// Message is the body of a webhook execution
type Message struct {
	Embeds []Embed `json:"embeds"`
}

// Embed is a rich message block
type Embed struct {
	Title  string  `json:"title"`
	Fields []Field `json:"fields"`
	Color  int     `json:"color"`
}

// Field is one name/value row of an embed
type Field struct {
	Name   string `json:"name"`
	Value  string `json:"value"`
	Inline bool   `json:"inline,omitempty"`
}
