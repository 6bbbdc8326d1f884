package jira

import (
	"encoding/json"
	"strings"
)

// SearchResult represents the top-level structure from the Jira search API.
type SearchResult struct {
	Issues []Issue `json:"issues"`
}

// Issue is the canonical read-only issue record. Every API response is
// decoded into this shape before it reaches rendering or filtering code.
type Issue struct {
	Key    string `json:"key"`
	Fields Fields `json:"fields"`
}

// Fields represents the inner fields of a Jira issue.
type Fields struct {
	Summary     string       `json:"summary"`
	Description Text         `json:"description"`
	IssueType   Named        `json:"issuetype"`
	Status      Named        `json:"status"`
	Priority    *Named       `json:"priority"` // nullable
	Assignee    *User        `json:"assignee"` // nullable
	Reporter    *User        `json:"reporter"` // nullable
	Labels      []string     `json:"labels"`
	Created     string       `json:"created"`
	Updated     string       `json:"updated"`
	Comment     *CommentPage `json:"comment"` // present only when requested
}

// Named is any Jira object we only care about by display name (status, type, priority).
type Named struct {
	Name string `json:"name"`
}

// User represents the assignee, reporter or comment author of an issue.
type User struct {
	DisplayName string `json:"displayName"`
}

// CommentPage is the comment container returned by the comment endpoint
// and embedded in issue fields when comments are requested.
type CommentPage struct {
	Comments []Comment `json:"comments"`
}

// Comment is a single comment on an issue.
type Comment struct {
	Author  *User  `json:"author"` // nullable
	Body    Text   `json:"body"`
	Created string `json:"created"`
}

// Text is free-form issue text. Jira Server and API v2 return it as a plain
// string; Jira Cloud (API v3) returns an Atlassian Document Format object.
// Both decode into plain text with paragraph breaks preserved.
type Text string

// UnmarshalJSON accepts either a JSON string or an ADF document.
func (t *Text) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*t = ""
		return nil
	}

	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*t = Text(s)
		return nil
	}

	var doc adfNode
	if err := json.Unmarshal(data, &doc); err != nil {
		return err
	}
	*t = Text(doc.plainText())
	return nil
}

// String returns the text content.
func (t Text) String() string { return string(t) }

// adfNode is a minimal view of an Atlassian Document Format node.
type adfNode struct {
	Type    string    `json:"type"`
	Text    string    `json:"text"`
	Content []adfNode `json:"content"`
}

// plainText flattens the node tree into text. Top-level blocks become
// paragraphs separated by blank lines, hard breaks become newlines.
func (n adfNode) plainText() string {
	switch n.Type {
	case "text":
		return n.Text
	case "hardBreak":
		return "\n"
	}

	parts := make([]string, 0, len(n.Content))
	for _, c := range n.Content {
		if s := c.plainText(); s != "" {
			parts = append(parts, s)
		}
	}

	sep := ""
	if n.Type == "doc" {
		sep = "\n\n"
	}
	return strings.Join(parts, sep)
}
