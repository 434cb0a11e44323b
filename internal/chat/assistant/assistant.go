package assistant

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"

	"github.com/Neruzzz/utility-helper/internal/chat/model"
	"github.com/Neruzzz/utility-helper/internal/tools"

	"github.com/openai/openai-go/v2"
	"github.com/openai/openai-go/v2/option"
)

const maxToolRounds = 15

const systemPrompt = `You are a helpful, concise assistant for dates, times and maths.
Use the provided functions for any date arithmetic, weekday lookup or calculation instead of computing it yourself.
Dates are YYYY-MM-DD and times are in the format H:MM AM/PM.`

type Assistant struct {
	cli   openai.Client
	model openai.ChatModel
	tools *tools.Registry
}

// New builds an assistant exposing every tool in reg. The API key is read
// from OPENAI_API_KEY unless one is passed in opts.
func New(reg *tools.Registry, model string, opts ...option.RequestOption) *Assistant {
	a := &Assistant{cli: openai.NewClient(opts...), model: openai.ChatModelGPT4_1, tools: reg}
	if model != "" {
		a.model = openai.ChatModel(model)
	}

	ts := reg.AllTools()
	if len(ts) == 0 {
		slog.Warn("No tools registered!")
	} else {
		slog.Info("Tools registered", "count", len(ts))
		for _, t := range ts {
			slog.Info("Tool registered", "name", t.Name(), "desc", t.Description())
		}
	}

	return a
}

func (a *Assistant) Reply(ctx context.Context, conv *model.Conversation) (string, error) {
	if len(conv.Messages) == 0 {
		return "", errors.New("conversation has no messages")
	}
	slog.InfoContext(ctx, "Generating reply for conversation", "conversation_id", conv.ID, "user", conv.UserID)

	msgs := []openai.ChatCompletionMessageParamUnion{
		openai.SystemMessage(systemPrompt),
	}
	for _, m := range conv.Messages {
		switch m.Role {
		case model.RoleUser:
			msgs = append(msgs, openai.UserMessage(m.Content))
		case model.RoleAssistant:
			msgs = append(msgs, openai.AssistantMessage(m.Content))
		}
	}

	var toolDefs []openai.ChatCompletionToolUnionParam
	for _, t := range a.tools.AllTools() {
		toolDefs = append(toolDefs,
			openai.ChatCompletionFunctionTool(openai.FunctionDefinitionParam{
				Name:        t.Name(),
				Description: openai.String(t.Description()),
				Parameters:  t.ParametersSchema(),
			}),
		)
	}

	for i := 0; i < maxToolRounds; i++ {
		resp, err := a.cli.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
			Model:    a.model,
			Messages: msgs,
			Tools:    toolDefs,
		})
		if err != nil {
			return "", err
		}
		if len(resp.Choices) == 0 {
			return "", errors.New("no choices returned by OpenAI")
		}

		message := resp.Choices[0].Message
		if len(message.ToolCalls) == 0 {
			return message.Content, nil
		}

		msgs = append(msgs, message.ToParam())

		for _, call := range message.ToolCalls {
			slog.InfoContext(ctx, "Tool call received", "name", call.Function.Name, "args", call.Function.Arguments)
			msgs = append(msgs, openai.ToolMessage(a.runTool(ctx, conv.UserID, call.Function.Name, call.Function.Arguments), call.ID))
		}
	}

	return "", errors.New("too many tool calls, unable to generate reply")
}

// runTool executes one tool call and returns the text handed back to the
// model. Failures are reported to the model rather than aborting the reply.
func (a *Assistant) runTool(ctx context.Context, userID, name, rawArgs string) string {
	t := a.tools.FindByName(name)
	if t == nil {
		return "unknown tool: " + name
	}

	args := map[string]any{}
	if rawArgs != "" {
		if err := json.Unmarshal([]byte(rawArgs), &args); err != nil {
			return "failed to parse tool arguments: " + err.Error()
		}
	}
	withUser(t, args, userID)

	out, err := a.tools.Invoke(ctx, name, args)
	if err != nil {
		return "tool error: " + err.Error()
	}
	return out
}

// withUser fills the "user" input of tools that take one, since the model
// does not know the chat user's id.
func withUser(t tools.Tool, args map[string]any, userID string) {
	if userID == "" {
		return
	}
	props, _ := t.ParametersSchema()["properties"].(map[string]any)
	if _, ok := props["user"]; !ok {
		return
	}
	if v, _ := args["user"].(string); v == "" {
		args["user"] = userID
	}
}
