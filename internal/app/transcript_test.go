package app

import (
	"reflect"
	"testing"

	"sheetchat/internal/types"
)

func userMsg(text string) types.Message {
	return types.Message{Role: types.RoleUser, Content: text, Timestamp: "t"}
}

func replyMsg(text string) types.Message {
	return types.Message{Role: types.RoleAssistant, Content: text, Timestamp: "t"}
}

func TestTranscriptConfirmAppendsUserThenReply(t *testing.T) {
	var tr Transcript
	prior := []types.Message{userMsg("q0"), replyMsg("a0")}
	tr.Reset(prior)

	token := tr.Apply(userMsg("q1"))
	if tr.Pending() != 1 {
		t.Fatalf("expected one pending entry, got %d", tr.Pending())
	}
	if !tr.Confirm(token, replyMsg("a1")) {
		t.Fatalf("expected confirm to succeed")
	}
	want := append(append([]types.Message{}, prior...), userMsg("q1"), replyMsg("a1"))
	if got := tr.Messages(); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected messages:\n got=%#v\nwant=%#v", got, want)
	}
	if tr.Pending() != 0 {
		t.Fatalf("expected no pending entries")
	}
	if tr.Confirm(token, replyMsg("again")) {
		t.Fatalf("expected second confirm of same token to fail")
	}
}

func TestTranscriptRevertRestoresPriorList(t *testing.T) {
	var tr Transcript
	prior := []types.Message{userMsg("q0"), replyMsg("a0")}
	tr.Reset(prior)

	token := tr.Apply(userMsg("q1"))
	if !tr.Revert(token) {
		t.Fatalf("expected revert to succeed")
	}
	if got := tr.Messages(); !reflect.DeepEqual(got, prior) {
		t.Fatalf("expected prior list after revert, got %#v", got)
	}
	if tr.Revert(token) {
		t.Fatalf("expected second revert to be a no-op")
	}
}

func TestTranscriptRevertTargetsTokenWithSeveralInFlight(t *testing.T) {
	var tr Transcript
	tr.Reset(nil)
	first := tr.Apply(userMsg("q1"))
	second := tr.Apply(userMsg("q2"))

	if !tr.Revert(first) {
		t.Fatalf("expected revert of first send")
	}
	if !tr.Confirm(second, replyMsg("a2")) {
		t.Fatalf("expected confirm of second send")
	}
	want := []types.Message{userMsg("q2"), replyMsg("a2")}
	if got := tr.Messages(); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected messages: %#v", got)
	}
}

func TestTranscriptOutOfOrderConfirmKeepsPairs(t *testing.T) {
	var tr Transcript
	tr.Reset(nil)
	first := tr.Apply(userMsg("q1"))
	second := tr.Apply(userMsg("q2"))

	tr.Confirm(second, replyMsg("a2"))
	tr.Confirm(first, replyMsg("a1"))

	want := []types.Message{userMsg("q1"), replyMsg("a1"), userMsg("q2"), replyMsg("a2")}
	if got := tr.Messages(); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected messages: %#v", got)
	}
	if reply, ok := tr.LastReply(); !ok || reply.Content != "a2" {
		t.Fatalf("unexpected last reply: %#v ok=%v", reply, ok)
	}
}

func TestTranscriptResetDropsPending(t *testing.T) {
	var tr Transcript
	token := tr.Apply(userMsg("q1"))
	tr.Reset(nil)
	if tr.Len() != 0 || tr.Pending() != 0 {
		t.Fatalf("expected empty transcript")
	}
	if tr.Confirm(token, replyMsg("late")) {
		t.Fatalf("expected stale token to be rejected after reset")
	}
}
