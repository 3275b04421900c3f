// ABOUTME: Typed accessors over raw Notion page properties
// ABOUTME: Read helpers plus write-side builders with empty-field sentinels
package notion

import (
	"fmt"
	"time"

	"github.com/jomei/notionapi"
)

// Read-side helpers. A missing or differently-typed property reads as
// the zero value; deserialization never panics on schema drift.

func getTitle(props notionapi.Properties, key string) string {
	p, ok := props[key].(*notionapi.TitleProperty)
	if !ok || len(p.Title) == 0 {
		return ""
	}
	return p.Title[0].PlainText
}

func getRichText(props notionapi.Properties, key string) string {
	p, ok := props[key].(*notionapi.RichTextProperty)
	if !ok || len(p.RichText) == 0 {
		return ""
	}
	return p.RichText[0].PlainText
}

func getNumber(props notionapi.Properties, key string) (float64, bool) {
	p, ok := props[key].(*notionapi.NumberProperty)
	if !ok {
		return 0, false
	}
	return p.Number, true
}

func getInt(props notionapi.Properties, key string) *int64 {
	n, ok := getNumber(props, key)
	if !ok || n == 0 {
		return nil
	}
	v := int64(n)
	return &v
}

func getEmail(props notionapi.Properties, key string) string {
	p, ok := props[key].(*notionapi.EmailProperty)
	if !ok {
		return ""
	}
	return p.Email
}

func getPhone(props notionapi.Properties, key string) string {
	p, ok := props[key].(*notionapi.PhoneNumberProperty)
	if !ok {
		return ""
	}
	return p.PhoneNumber
}

func getURL(props notionapi.Properties, key string) string {
	p, ok := props[key].(*notionapi.URLProperty)
	if !ok {
		return ""
	}
	return p.URL
}

func getDate(props notionapi.Properties, key string) string {
	p, ok := props[key].(*notionapi.DateProperty)
	if !ok || p.Date == nil || p.Date.Start == nil {
		return ""
	}
	return time.Time(*p.Date.Start).Format("2006-01-02")
}

func getDateTime(props notionapi.Properties, key string) string {
	p, ok := props[key].(*notionapi.DateProperty)
	if !ok || p.Date == nil || p.Date.Start == nil {
		return ""
	}
	t := time.Time(*p.Date.Start)
	if t.Hour() == 0 && t.Minute() == 0 {
		return t.Format("2006-01-02")
	}
	return t.Format("2006-01-02T15:04")
}

func getMultiSelect(props notionapi.Properties, key string) []string {
	p, ok := props[key].(*notionapi.MultiSelectProperty)
	if !ok {
		return nil
	}
	out := make([]string, 0, len(p.MultiSelect))
	for _, o := range p.MultiSelect {
		out = append(out, o.Name)
	}
	return out
}

// getRelationIDs returns the related page ids and whether the relation
// property exists at all. An empty-but-present relation is a valid
// empty list; an absent property is not.
func getRelationIDs(props notionapi.Properties, key string) ([]string, bool) {
	p, ok := props[key].(*notionapi.RelationProperty)
	if !ok {
		return nil, false
	}
	ids := make([]string, 0, len(p.Relation))
	for _, r := range p.Relation {
		ids = append(ids, string(r.ID))
	}
	return ids, true
}

func getUniqueID(props notionapi.Properties, key string) string {
	p, ok := props[key].(*notionapi.UniqueIDProperty)
	if !ok {
		return ""
	}
	prefix := "GIG"
	if p.UniqueID.Prefix != nil {
		prefix = *p.UniqueID.Prefix
	}
	return fmt.Sprintf("%s-%d", prefix, p.UniqueID.Number)
}

// Write-side builders. Absent optional text fields are written as an
// explicit empty rich-text sentinel; absent numerics and relations are
// omitted so the platform stores null.

func titleProp(content string) *notionapi.TitleProperty {
	return &notionapi.TitleProperty{
		Title: []notionapi.RichText{{Text: &notionapi.Text{Content: content}}},
	}
}

func richTextProp(content string) *notionapi.RichTextProperty {
	return &notionapi.RichTextProperty{
		RichText: []notionapi.RichText{{Text: &notionapi.Text{Content: content}}},
	}
}

func relationProp(ids ...string) *notionapi.RelationProperty {
	rel := make([]notionapi.Relation, 0, len(ids))
	for _, id := range ids {
		rel = append(rel, notionapi.Relation{ID: notionapi.PageID(id)})
	}
	return &notionapi.RelationProperty{Relation: rel}
}

func dateProp(t time.Time) *notionapi.DateProperty {
	d := notionapi.Date(t)
	return &notionapi.DateProperty{Date: &notionapi.DateObject{Start: &d}}
}
