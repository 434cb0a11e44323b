package assistant

import (
	"context"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/google/go-cmp/cmp"

	"github.com/Neruzzz/utility-helper/internal/calendar"
	"github.com/Neruzzz/utility-helper/internal/chat/model"
	"github.com/Neruzzz/utility-helper/internal/directory"
	"github.com/Neruzzz/utility-helper/internal/functions"
	"github.com/Neruzzz/utility-helper/internal/tools"
)

func newRegistry() *tools.Registry {
	dir := directory.NewStatic(map[string]directory.Timezone{
		"U1": {Name: "UTC", Label: "Coordinated Universal Time"},
	})
	clock := calendar.FixedClock(time.Date(2024, time.January, 17, 10, 0, 0, 0, time.UTC))
	return tools.NewRegistry(functions.New(dir, functions.WithClock(clock)))
}

func TestWithUser(t *testing.T) {
	reg := newRegistry()

	tests := []struct {
		name string
		tool string
		args map[string]any
		want map[string]any
	}{
		{
			name: "fills missing user",
			tool: "datetime_function",
			args: map[string]any{"relative_count": 1.0},
			want: map[string]any{"relative_count": 1.0, "user": "U1"},
		},
		{
			name: "keeps explicit user",
			tool: "getnextdate_function",
			args: map[string]any{"user": "U9"},
			want: map[string]any{"user": "U9"},
		},
		{
			name: "ignores tools without user input",
			tool: "math_helper_function",
			args: map[string]any{"operator": "+"},
			want: map[string]any{"operator": "+"},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			withUser(reg.FindByName(tt.tool), tt.args, "U1")
			if diff := cmp.Diff(tt.want, tt.args); diff != "" {
				t.Errorf("withUser() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestRunTool(t *testing.T) {
	a := New(newRegistry(), "")
	ctx := context.Background()

	got := a.runTool(ctx, "U1", "datediff_function", `{"date1":"2024-01-15","date2":"2024-03-15","unit":"Months"}`)
	if want := `{"difference":2,"unit_used":"Months","is_anniversary":false}`; got != want {
		t.Errorf("runTool(datediff) = %s, want %s", got, want)
	}

	got = a.runTool(ctx, "U1", "datetime_function", `{"relative_count":1,"relative_unit":"Days","time_specific":"9:00 AM"}`)
	if !strings.Contains(got, `"date_value":"2024-01-18"`) {
		t.Errorf("runTool(datetime) = %s, want the user injected and date 2024-01-18", got)
	}

	if got := a.runTool(ctx, "U1", "get_weather", "{}"); got != "unknown tool: get_weather" {
		t.Errorf("runTool(unknown) = %q", got)
	}
	if got := a.runTool(ctx, "U1", "math_helper_function", "{not json"); !strings.HasPrefix(got, "failed to parse tool arguments") {
		t.Errorf("runTool(bad json) = %q", got)
	}
	if got := a.runTool(ctx, "U404", "datetime_function", `{"relative_count":1,"relative_unit":"Days"}`); !strings.HasPrefix(got, "tool error:") {
		t.Errorf("runTool(unknown user) = %q", got)
	}
}

func TestReply_EmptyConversation(t *testing.T) {
	a := New(newRegistry(), "")
	if _, err := a.Reply(context.Background(), &model.Conversation{}); err == nil {
		t.Fatal("Reply() expected error for empty conversation, got nil")
	}
}

func TestReply_UsesTools_Integration(t *testing.T) {
	if os.Getenv("OPENAI_API_KEY") == "" {
		t.Skip("skipping integration test: OPENAI_API_KEY not set")
	}
	a := New(newRegistry(), "")

	reply, err := a.Reply(context.Background(), &model.Conversation{
		UserID: "U1",
		Messages: []*model.Message{
			{Role: model.RoleUser, Content: "How many days are there between 2024-01-01 and 2024-03-01?"},
		},
	})
	if err != nil {
		t.Fatalf("Reply() error: %v", err)
	}
	if !strings.Contains(reply, "60") {
		t.Errorf("Reply() = %q, want it to mention 60 days", reply)
	}
}
