// ABOUTME: Tests for property accessors and write builders
package notion

import (
	"testing"
	"time"

	"github.com/jomei/notionapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetTitle(t *testing.T) {
	props := notionapi.Properties{
		"Name": &notionapi.TitleProperty{
			Title: []notionapi.RichText{{PlainText: "La Scala"}},
		},
	}

	assert.Equal(t, "La Scala", getTitle(props, "Name"))
	assert.Equal(t, "", getTitle(props, "Missing"))
	assert.Equal(t, "", getTitle(notionapi.Properties{
		"Name": &notionapi.TitleProperty{},
	}, "Name"))
}

func TestGetTitleWrongType(t *testing.T) {
	props := notionapi.Properties{
		"Name": &notionapi.RichTextProperty{
			RichText: []notionapi.RichText{{PlainText: "nope"}},
		},
	}
	assert.Equal(t, "", getTitle(props, "Name"))
}

func TestGetInt(t *testing.T) {
	props := notionapi.Properties{
		"SIRET": &notionapi.NumberProperty{Number: 12345678900011},
		"Zero":  &notionapi.NumberProperty{Number: 0},
	}

	siret := getInt(props, "SIRET")
	require.NotNil(t, siret)
	assert.Equal(t, int64(12345678900011), *siret)

	// Workspace stores absent numbers as 0; we read that as unset.
	assert.Nil(t, getInt(props, "Zero"))
	assert.Nil(t, getInt(props, "Missing"))
}

func TestGetRelationIDsDistinguishesAbsentFromEmpty(t *testing.T) {
	props := notionapi.Properties{
		"Gigs": &notionapi.RelationProperty{},
		"Organization": &notionapi.RelationProperty{
			Relation: []notionapi.Relation{{ID: "org-1"}},
		},
	}

	ids, ok := getRelationIDs(props, "Gigs")
	assert.True(t, ok)
	assert.Empty(t, ids)

	ids, ok = getRelationIDs(props, "Organization")
	assert.True(t, ok)
	assert.Equal(t, []string{"org-1"}, ids)

	_, ok = getRelationIDs(props, "Missing")
	assert.False(t, ok)
}

func TestGetDateTime(t *testing.T) {
	midnight := notionapi.Date(time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC))
	evening := notionapi.Date(time.Date(2026, 7, 14, 20, 30, 0, 0, time.UTC))

	props := notionapi.Properties{
		"DateOnly": &notionapi.DateProperty{Date: &notionapi.DateObject{Start: &midnight}},
		"When":     &notionapi.DateProperty{Date: &notionapi.DateObject{Start: &evening}},
	}

	assert.Equal(t, "2026-07-14", getDateTime(props, "DateOnly"))
	assert.Equal(t, "2026-07-14T20:30", getDateTime(props, "When"))
	assert.Equal(t, "", getDateTime(props, "Missing"))
}

func TestGetUniqueID(t *testing.T) {
	prefix := "GIG"
	props := notionapi.Properties{
		"ID": &notionapi.UniqueIDProperty{
			UniqueID: notionapi.UniqueID{Prefix: &prefix, Number: 42},
		},
		"NoPrefix": &notionapi.UniqueIDProperty{
			UniqueID: notionapi.UniqueID{Number: 7},
		},
	}

	assert.Equal(t, "GIG-42", getUniqueID(props, "ID"))
	assert.Equal(t, "GIG-7", getUniqueID(props, "NoPrefix"))
	assert.Equal(t, "", getUniqueID(props, "Missing"))
}

func TestWriteBuilders(t *testing.T) {
	title := titleProp("Fête de la musique")
	require.Len(t, title.Title, 1)
	assert.Equal(t, "Fête de la musique", title.Title[0].Text.Content)

	// The empty sentinel is a one-element list with empty content, not
	// an empty list.
	empty := richTextProp("")
	require.Len(t, empty.RichText, 1)
	assert.Equal(t, "", empty.RichText[0].Text.Content)

	rel := relationProp("a", "b")
	require.Len(t, rel.Relation, 2)
	assert.Equal(t, notionapi.PageID("a"), rel.Relation[0].ID)

	d := dateProp(time.Date(2026, 7, 14, 0, 0, 0, 0, time.UTC))
	require.NotNil(t, d.Date.Start)
	assert.Equal(t, "2026-07-14", time.Time(*d.Date.Start).Format("2006-01-02"))
}
