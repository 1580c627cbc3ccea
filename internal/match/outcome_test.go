package match

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAddDetail_Separators(t *testing.T) {
	o := Fail("Ungültige Zeichen")
	o.AddDetail("Grossbuchstaben!", nil, nil)
	o.AddDetail("Leerzeichen!", nil, nil)
	assert.Equal(t, "Ungültige Zeichen: Grossbuchstaben! Leerzeichen!", o.Message)
	assert.False(t, o.Passed)
}

func TestAddDetail_GroupsReplacedOnlyWhenNamed(t *testing.T) {
	o := Fail("x")
	first := map[string]string{GroupBefore: "a", GroupError: "B", GroupAfter: "c"}
	o.AddDetail("eins", []string{GroupBefore, GroupError, GroupAfter}, first)
	o.AddDetail("zwei", nil, nil)
	assert.Equal(t, first, o.Groups)

	second := map[string]string{GroupBefore: "", GroupError: "Ä", GroupAfter: "bc"}
	o.AddDetail("drei", []string{GroupBefore, GroupError, GroupAfter}, second)
	assert.Equal(t, second, o.Groups)
}

func TestHighlight(t *testing.T) {
	tests := []struct {
		name    string
		outcome Outcome
		want    [3]string
		wantOK  bool
	}{
		{
			name:    "passing outcome never highlights",
			outcome: Pass([]string{GroupError}, map[string]string{GroupError: "x"}),
		},
		{
			name:    "failure without groups",
			outcome: Fail("Fehler"),
		},
		{
			name: "failure with unrelated groups",
			outcome: Outcome{
				Message: "Fehler",
				Groups:  map[string]string{"title": "abc"},
			},
		},
		{
			name: "failure with location",
			outcome: Outcome{
				Message: "Fehler",
				Groups:  map[string]string{GroupBefore: "ab", GroupError: "Ö", GroupAfter: "cd.jpg"},
			},
			want:   [3]string{"ab", "Ö", "cd.jpg"},
			wantOK: true,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before, bad, after, ok := tt.outcome.Highlight()
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, [3]string{before, bad, after})
		})
	}
}
