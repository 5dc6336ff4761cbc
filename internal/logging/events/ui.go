package events

import "github.com/atomicstack/kaomoji-picker/internal/logging"

type PickerTracer struct{}

type FilterTracer struct{}

type CursorTracer struct{}

type HotkeyTracer struct{}

type ClipboardTracer struct{}

type CommandTracer struct{}

type TmuxTracer struct{}

var (
	Picker    = PickerTracer{}
	Filter    = FilterTracer{}
	Cursor    = CursorTracer{}
	Hotkey    = HotkeyTracer{}
	Clipboard = ClipboardTracer{}
	Command   = CommandTracer{}
	Tmux      = TmuxTracer{}
)

func (PickerTracer) Show(entries int) {
	logging.Trace("picker.show", map[string]interface{}{"entries": entries})
}

func (PickerTracer) Hide(reason string) {
	logging.Trace("picker.hide", map[string]interface{}{"reason": reason})
}

func (PickerTracer) Commit(line, query string, cursor int) {
	logging.Trace("picker.commit", map[string]interface{}{"line": line, "query": query, "cursor": cursor})
}

func (PickerTracer) NoMatch(query string) {
	logging.Trace("picker.no-match", map[string]interface{}{"query": query})
}

func (FilterTracer) Changed(query string, matches int) {
	logging.Trace("filter.changed", map[string]interface{}{"query": query, "matches": matches})
}

func (FilterTracer) Cleared() {
	logging.Trace("filter.clear", nil)
}

func (CursorTracer) Move(delta, cursor int) {
	logging.Trace("cursor.move", map[string]interface{}{"delta": delta, "cursor": cursor})
}

func (HotkeyTracer) Fired(source string) {
	logging.Trace("hotkey.fired", map[string]interface{}{"source": source})
}

func (HotkeyTracer) Error(source string, err error) {
	if err == nil {
		return
	}
	logging.Trace("hotkey.error", map[string]interface{}{"source": source, "error": err.Error()})
}

func (HotkeyTracer) Closed(source string) {
	logging.Trace("hotkey.closed", map[string]interface{}{"source": source})
}

func (ClipboardTracer) Copied(payload string) {
	logging.Trace("clipboard.copied", map[string]interface{}{"payload": payload})
}

func (ClipboardTracer) Failed(err error) {
	if err == nil {
		return
	}
	logging.Trace("clipboard.failed", map[string]interface{}{"error": err.Error()})
}

func (CommandTracer) Queue(id, label string) {
	logging.Trace("command.queue", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Skip(id, label string) {
	logging.Trace("command.skip", map[string]interface{}{"id": id, "label": label})
}

func (CommandTracer) Result(id, label, msgType string) {
	logging.Trace("command.result", map[string]interface{}{"id": id, "label": label, "msg": msgType})
}

func (TmuxTracer) Run(args []string, err error) {
	payload := map[string]interface{}{"args": args}
	if err != nil {
		payload["error"] = err.Error()
	}
	logging.Trace("tmux.run", payload)
}
