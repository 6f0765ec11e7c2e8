package normalize_test

import (
	"reflect"
	"testing"

	"github.com/dalemusser/chapterhub/internal/app/system/normalize"
)

func TestEmail(t *testing.T) {
	if got := normalize.Email("  Jordan@Example.COM "); got != "jordan@example.com" {
		t.Errorf("got %q", got)
	}
}

func TestName(t *testing.T) {
	if got := normalize.Name("  Sam   K.  Rivera "); got != "Sam K. Rivera" {
		t.Errorf("got %q", got)
	}
}

func TestTagList(t *testing.T) {
	got := normalize.TagList(" Policy , climate,, Policy ,STEM ")
	want := []string{"Policy", "climate", "STEM"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("got %v, want %v", got, want)
	}
}

func TestTagList_Empty(t *testing.T) {
	if got := normalize.TagList("  , ,"); len(got) != 0 {
		t.Errorf("got %v, want empty", got)
	}
}
