package event

import "testing"

func TestTopicMatches(t *testing.T) {
	tests := []struct {
		topic   Topic
		pattern Topic
		want    bool
	}{
		{"datatable.cell.highlighted", "datatable.cell.highlighted", true},
		{"datatable.cell.highlighted", "datatable.*.highlighted", true},
		{"datatable.row.selected", "datatable.*.highlighted", false},
		{"datatable.row.selected", "datatable.**", true},
		{"datatable", "datatable.**", true},
		{"config.reloaded", "datatable.**", false},
		{"datatable.header.selected", "**.selected", true},
		{"datatable.cell", "datatable.cell.*", false},
	}

	for _, tt := range tests {
		if got := tt.topic.Matches(tt.pattern); got != tt.want {
			t.Errorf("%q.Matches(%q) = %v, want %v", tt.topic, tt.pattern, got, tt.want)
		}
	}
}

func TestTopicIsValid(t *testing.T) {
	tests := []struct {
		topic Topic
		want  bool
	}{
		{"", false},
		{"a", true},
		{"a.b", true},
		{".a", false},
		{"a..b", false},
		{"a.", false},
	}

	for _, tt := range tests {
		if got := tt.topic.IsValid(); got != tt.want {
			t.Errorf("%q.IsValid() = %v, want %v", tt.topic, got, tt.want)
		}
	}
}

func TestTopicChild(t *testing.T) {
	if got := Topic("").Child("a"); got != "a" {
		t.Errorf("Child of empty = %q", got)
	}
	if got := Topic("a").Child("b"); got != "a.b" {
		t.Errorf("Child = %q", got)
	}
}
