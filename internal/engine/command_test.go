package engine

import (
	"encoding/json"
	"testing"

	"dungeon-crawler/pkg/api"
)

func TestParseCommand(t *testing.T) {
	tests := []struct {
		input    string
		expected CommandKind
		ok       bool
	}{
		{"MOVE", CmdMove, true},
		{"move", CmdMove, true},
		{"Move", CmdMove, true},
		{"DESCEND", CmdDescend, true},
		{"target_cancel", CmdTargetCancel, true},
		{"UNKNOWN_ACTION", CmdNone, false},
		{"", CmdNone, false},
	}

	for _, tt := range tests {
		result, ok := ParseCommand(tt.input)
		if result != tt.expected || ok != tt.ok {
			t.Errorf("ParseCommand(%q) = %v, %v, want %v, %v", tt.input, result, ok, tt.expected, tt.ok)
		}
	}
}

func TestCommandKind_String(t *testing.T) {
	tests := []struct {
		kind     CommandKind
		expected string
	}{
		{CmdMove, "MOVE"},
		{CmdSaveExit, "SAVE"},
		{CommandKind(200), "UNKNOWN"},
	}

	for _, tt := range tests {
		if got := tt.kind.String(); got != tt.expected {
			t.Errorf("CommandKind(%d).String() = %q, want %q", tt.kind, got, tt.expected)
		}
	}
}

func TestDecodeCommand(t *testing.T) {
	raw := func(v any) json.RawMessage {
		b, _ := json.Marshal(v)
		return b
	}

	tests := []struct {
		name    string
		msg     api.ClientCommand
		want    Command
		wantErr bool
	}{
		{"move", api.ClientCommand{Action: "MOVE", Payload: raw(api.DirectionPayload{Dx: 1, Dy: -1})}, Move(1, -1), false},
		{"move zero", api.ClientCommand{Action: "MOVE", Payload: raw(api.DirectionPayload{})}, Command{}, true},
		{"move no payload", api.ClientCommand{Action: "MOVE"}, Command{}, true},
		{"select", api.ClientCommand{Action: "SELECT_ITEM", Payload: raw(api.ItemPayload{Index: 2})}, SelectItem(2), false},
		{"target", api.ClientCommand{Action: "TARGET", Payload: raw(api.PositionPayload{X: 4, Y: 7})}, Target(4, 7), false},
		{"wait", api.ClientCommand{Action: "wait"}, Simple(CmdWait), false},
		{"unknown", api.ClientCommand{Action: "FLY"}, Command{}, true},
	}

	for _, tt := range tests {
		got, err := DecodeCommand(tt.msg)
		if (err != nil) != tt.wantErr {
			t.Errorf("%s: error = %v, wantErr %v", tt.name, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("%s: got %+v, want %+v", tt.name, got, tt.want)
		}
	}
}
