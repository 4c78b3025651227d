package roadmap

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func validSchema() *Schema {
	return &Schema{
		Title: "Platform 2025",
		Year:  2025,
		Epics: []EpicImport{
			{
				Title: "Billing rework",
				Color: "#83a598",
				Stories: []StoryImport{
					{Title: "Invoicing v2", StartDate: "2025-02-03", EndDate: "AUG"},
				},
			},
		},
	}
}

func TestValidateSchema_Valid(t *testing.T) {
	assert.Empty(t, ValidateSchema(validSchema()))
}

func TestValidateSchema_CollectsAllProblems(t *testing.T) {
	schema := &Schema{
		Year: 1200,
		Epics: []EpicImport{
			{Stories: []StoryImport{{Status: "blocked"}}},
		},
	}
	errs := ValidateSchema(schema)
	require.NotEmpty(t, errs)

	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	assert.Contains(t, msgs, "title is required")
	assert.Contains(t, msgs, "year: 1200 is outside the plausible planning range")
	assert.Contains(t, msgs, "epics[0].title is required")
	assert.Contains(t, msgs, "epics[0].stories[0].title is required")
	assert.Contains(t, msgs, `epics[0].stories[0].status: invalid value "blocked"`)
}

func TestValidateSchema_DuplicateIDs(t *testing.T) {
	schema := validSchema()
	schema.Epics[0].Stories = append(schema.Epics[0].Stories,
		StoryImport{ID: "s1", Title: "A"},
		StoryImport{ID: "s1", Title: "B"},
	)
	errs := ValidateSchema(schema)
	require.Len(t, errs, 1)
	assert.Contains(t, errs[0].Error(), `duplicate id "s1"`)
}

func TestValidateSchema_MalformedDatesAreNotErrors(t *testing.T) {
	schema := validSchema()
	schema.Epics[0].Stories[0].StartDate = "sometime soon"
	schema.Epics[0].Stories[0].EndDate = "31/02/25"
	assert.Empty(t, ValidateSchema(schema),
		"bad dates render best-effort, they never fail validation")
}
