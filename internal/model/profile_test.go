package model

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestSkillsList_UnmarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		body string
		want SkillsList
	}{
		{"array", `["Go","SQL"]`, SkillsList{"Go", "SQL"}},
		{"comma string", `"html, css,js"`, SkillsList{"html", "css", "js"}},
		{"blank entries dropped", `"go, , sql,"`, SkillsList{"go", "sql"}},
		{"empty string", `""`, SkillsList{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var got SkillsList
			if err := json.Unmarshal([]byte(tt.body), &got); err != nil {
				t.Fatalf("expected no error, got: %v", err)
			}
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("skills = %v, want %v", got, tt.want)
			}
		})
	}

	var got SkillsList
	if err := json.Unmarshal([]byte(`42`), &got); err == nil {
		t.Error("a number is neither an array nor a string; want an error")
	}
}

func TestProfile_BuildSocial(t *testing.T) {
	youtube := "https://youtube.com/acme"

	p := &Profile{}
	p.BuildSocial()
	if p.Social != nil {
		t.Errorf("social = %+v, want nil when no link is set", p.Social)
	}

	p.Youtube = &youtube
	p.BuildSocial()
	if p.Social == nil || p.Social.Youtube == nil || *p.Social.Youtube != youtube {
		t.Errorf("social = %+v, want the youtube link folded in", p.Social)
	}

	// The flat columns stay out of the JSON body; only the sub-record shows.
	body, err := json.Marshal(p)
	if err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	var decoded map[string]json.RawMessage
	if err := json.Unmarshal(body, &decoded); err != nil {
		t.Fatalf("expected no error, got: %v", err)
	}
	if _, ok := decoded["youtube"]; ok {
		t.Error("flat youtube column must not appear at the top level")
	}
	if _, ok := decoded["social"]; !ok {
		t.Error("social sub-record missing from the JSON body")
	}
}
