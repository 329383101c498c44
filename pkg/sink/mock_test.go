package sink

import "testing"

func TestRecording_Order(t *testing.T) {
	r := NewRecording()

	r.SetAxis(AxisX, 960)
	r.SetAxis(AxisY, 540)
	r.SetButton(ButtonPrimary, true)
	r.Sync()

	want := []Event{
		{Kind: EventAxis, Axis: AxisX, Value: 960},
		{Kind: EventAxis, Axis: AxisY, Value: 540},
		{Kind: EventButton, Button: ButtonPrimary, Pressed: true},
		{Kind: EventSync},
	}
	if len(r.Events) != len(want) {
		t.Fatalf("Expected %d events, got %d", len(want), len(r.Events))
	}
	for i, ev := range r.Events {
		if ev != want[i] {
			t.Errorf("Event %d: got %+v, want %+v", i, ev, want[i])
		}
	}
}

func TestRecording_FailAfter(t *testing.T) {
	r := NewRecording()
	r.FailAfter = 1

	if err := r.SetAxis(AxisX, 1); err != nil {
		t.Fatalf("First write should succeed: %v", err)
	}
	if err := r.SetAxis(AxisY, 2); err == nil {
		t.Error("Expected second write to fail")
	}
}

func TestRecording_ClosedRejectsWrites(t *testing.T) {
	r := NewRecording()
	r.Close()

	if err := r.Sync(); err == nil {
		t.Error("Expected writes after Close to fail")
	}
	if !r.Closed() {
		t.Error("Expected Closed to report true")
	}
}
