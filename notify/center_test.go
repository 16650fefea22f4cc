package notify

import (
	"testing"
	"time"

	"github.com/riyaz/simpleshare-go/types"
)

func TestNotifyRecordsAndOrders(t *testing.T) {
	center := NewCenter(time.Minute)
	center.Notify(types.NotifyInfo, "first")
	time.Sleep(5 * time.Millisecond)
	center.Notify(types.NotifyError, "second")

	active := center.Active()
	if len(active) != 2 {
		t.Fatalf("Expected 2 active notifications, got %d", len(active))
	}
	if active[0].Message != "first" || active[1].Message != "second" {
		t.Errorf("Expected oldest-first order, got %q then %q", active[0].Message, active[1].Message)
	}
	if active[1].Level != types.NotifyError || active[1].Title != "❌ Error" {
		t.Errorf("Expected level-derived title, got %+v", active[1])
	}
	if active[0].ID == active[1].ID {
		t.Error("Expected distinct notification IDs")
	}
}

func TestNotificationsAutoDismiss(t *testing.T) {
	center := NewCenter(50 * time.Millisecond)
	center.Notify(types.NotifySuccess, "transient")
	if len(center.Active()) != 1 {
		t.Fatal("Expected the notification to be active immediately")
	}

	time.Sleep(200 * time.Millisecond)
	if got := len(center.Active()); got != 0 {
		t.Errorf("Expected the notification to auto-dismiss, got %d active", got)
	}
}

func TestObserverReceivesEachNotification(t *testing.T) {
	center := NewCenter(time.Minute)
	var seen []types.Notification
	center.SetObserver(func(n types.Notification) { seen = append(seen, n) })

	center.NotifyWithData(types.NotifySuccess, "done", map[string]any{"filename": "a.txt"})
	if len(seen) != 1 {
		t.Fatalf("Expected 1 observed notification, got %d", len(seen))
	}
	if seen[0].Data["filename"] != "a.txt" {
		t.Errorf("Expected data payload to reach the observer, got %v", seen[0].Data)
	}

	center.SetObserver(nil)
	center.Notify(types.NotifyInfo, "unobserved")
	if len(seen) != 1 {
		t.Errorf("Expected a removed observer to see nothing, got %d", len(seen))
	}
}

func TestNilCenterIsSafe(t *testing.T) {
	var center *Center
	center.Notify(types.NotifyInfo, "dropped")
	center.NotifyWithData(types.NotifyError, "dropped", nil)
	if got := center.Active(); got != nil {
		t.Errorf("Expected nil Active from a nil center, got %v", got)
	}
}
