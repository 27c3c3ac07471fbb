package event

import (
	"testing"
	"unicode/utf8"
)

func TestMentionText(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		mention string
		want    string
	}{
		{"leading mention", "@nlibot what's the weather in Taipei", "@nlibot", "what's the weather in Taipei"},
		{"case insensitive", "Hey @NLIBot book a flight", "@nlibot", "Hey book a flight"},
		{"repeated mention", "@nlibot @nlibot hi", "@nlibot", "hi"},
		{"only mention", "  @nlibot  ", "@nlibot", ""},
		{"no mention configured", "  hello  ", "", "hello"},
		{"multi-byte text", "@nlibot 今天天氣如何", "@nlibot", "今天天氣如何"},
		{"lowercase grows in bytes", "ȺȺȺ@nlibot", "@nlibot", "ȺȺȺ"},
		{"lowercase shrinks in bytes", "İİ @nlibot deploy", "@nlibot", "İİ deploy"},
		{"mixed case around wide runes", "Ⱥ @NLIBOT ⱥ @NliBot İ", "@nlibot", "Ⱥ ⱥ İ"},
		{"non-ascii mention", "@Bötchen hallo", "@bötchen", "hallo"},
		{"partial mention at end", "hello @nlib", "@nlibot", "hello @nlib"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MentionText(tt.text, tt.mention)
			if got != tt.want {
				t.Errorf("MentionText(%q, %q) = %q, want %q", tt.text, tt.mention, got, tt.want)
			}
			if !utf8.ValidString(got) {
				t.Errorf("MentionText(%q, %q) returned invalid UTF-8 %q", tt.text, tt.mention, got)
			}
		})
	}
}

func TestContainsMention(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"@nlibot hi", true},
		{"hi @NLIBOT", true},
		{"ȺȺȺ@nlibot", true},
		{"İİİİ nlibot", false},
		{"", false},
	}

	for _, tt := range tests {
		if got := containsMention(tt.text, "@nlibot"); got != tt.want {
			t.Errorf("containsMention(%q) = %v, want %v", tt.text, got, tt.want)
		}
	}

	if containsMention("@nlibot", "") {
		t.Error("containsMention() with empty mention should be false")
	}
}

func TestEvent_Key(t *testing.T) {
	e := &Event{Provider: "gitlab", RepoOwner: "group/sub", RepoName: "repo", Number: 3, CommentID: 99}
	if got, want := e.Key(), "gitlab/group/sub/repo/3/99"; got != want {
		t.Errorf("Key() = %q, want %q", got, want)
	}
}

func TestSplitPath(t *testing.T) {
	owner, repo, err := splitPath("group/sub/repo")
	if err != nil {
		t.Fatalf("splitPath() error = %v", err)
	}
	if owner != "group/sub" || repo != "repo" {
		t.Errorf("splitPath() = %q, %q, want group/sub, repo", owner, repo)
	}

	for _, bad := range []string{"", "repo", "/repo", "owner/"} {
		if _, _, err := splitPath(bad); err == nil {
			t.Errorf("splitPath(%q) expected error", bad)
		}
	}
}
