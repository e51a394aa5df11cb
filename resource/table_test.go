package resource

import (
	"testing"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

type testObserver struct {
	events []Event
}

func (o *testObserver) OnResourceEvent(e Event) {
	o.events = append(o.events, e)
}

var (
	scopeA = Owner{ID: 1, Name: "a"}
	scopeB = Owner{ID: 2, Name: "b"}
)

func TestTable_Basic(t *testing.T) {
	table := NewTable()

	h := table.Insert(1, scopeA, "test")
	if h == 0 {
		t.Fatal("Expected non-zero handle")
	}

	val, ok := table.Get(h)
	if !ok {
		t.Fatal("Get failed")
	}
	if val != "test" {
		t.Fatalf("Expected 'test', got %v", val)
	}

	if _, ok = table.GetTyped(h, 1); !ok {
		t.Fatal("GetTyped with correct type failed")
	}
	if _, ok = table.GetTyped(h, 2); ok {
		t.Fatal("GetTyped with wrong type should fail")
	}

	owner, ok := table.Owner(h)
	if !ok || owner != scopeA {
		t.Fatalf("Owner = %v, %v; want %v", owner, ok, scopeA)
	}

	val, ok = table.Remove(h)
	if !ok {
		t.Fatal("Remove failed")
	}
	if val != "test" {
		t.Fatalf("Expected 'test', got %v", val)
	}

	if table.Len() != 0 {
		t.Fatal("Expected Len() == 0 after Remove")
	}
}

func TestTable_RemoveTwice(t *testing.T) {
	table := NewTable()
	d := &dropCounter{}

	h := table.Insert(1, scopeA, d)
	if _, ok := table.Remove(h); !ok {
		t.Fatal("first Remove failed")
	}
	if _, ok := table.Remove(h); ok {
		t.Fatal("second Remove of the same handle should fail")
	}
	if d.count != 1 {
		t.Fatalf("Expected Drop() once, called %d times", d.count)
	}
}

func TestTable_Observer(t *testing.T) {
	table := NewTable()
	obs := &testObserver{}
	table.Subscribe(obs)

	h := table.Insert(1, scopeA, "test")
	if len(obs.events) != 1 {
		t.Fatalf("Expected 1 event, got %d", len(obs.events))
	}
	if obs.events[0].Type != EventCreated {
		t.Fatal("Expected EventCreated")
	}
	if obs.events[0].Handle != h {
		t.Fatal("Wrong handle in event")
	}

	table.Transfer(h, scopeB)
	if len(obs.events) != 2 {
		t.Fatalf("Expected 2 events, got %d", len(obs.events))
	}
	moved := obs.events[1]
	if moved.Type != EventMoved || moved.From != scopeA || moved.Owner != scopeB {
		t.Fatalf("unexpected move event: %+v", moved)
	}

	table.Remove(h)
	if len(obs.events) != 3 {
		t.Fatalf("Expected 3 events, got %d", len(obs.events))
	}
	dropped := obs.events[2]
	if dropped.Type != EventDropped {
		t.Fatal("Expected EventDropped")
	}
	if dropped.Owner != scopeB {
		t.Fatalf("drop attributed to %v, want %v", dropped.Owner, scopeB)
	}

	table.Unsubscribe(obs)
	table.Insert(1, scopeA, "test2")
	if len(obs.events) != 3 {
		t.Fatal("Should not receive events after Unsubscribe")
	}
}

func TestTable_TransferInvalid(t *testing.T) {
	table := NewTable()
	if table.Transfer(0, scopeA) {
		t.Fatal("Transfer of handle 0 should fail")
	}
	h := table.Insert(1, scopeA, "x")
	table.Remove(h)
	if table.Transfer(h, scopeB) {
		t.Fatal("Transfer of a removed handle should fail")
	}
}

func TestTable_ClearNewestFirst(t *testing.T) {
	table := NewTable()
	var order []string
	table.Subscribe(ObserverFunc(func(e Event) {
		if e.Type == EventDropped {
			order = append(order, e.Value.(string))
		}
	}))

	table.Insert(1, scopeA, "a")
	table.Insert(1, scopeA, "b")
	table.Insert(1, scopeA, "c")

	if table.Len() != 3 {
		t.Fatal("Expected Len() == 3")
	}

	table.Clear()

	if table.Len() != 0 {
		t.Fatal("Expected Len() == 0 after Clear")
	}
	want := []string{"c", "b", "a"}
	if len(order) != len(want) {
		t.Fatalf("drop order = %v, want %v", order, want)
	}
	for i := range want {
		if order[i] != want[i] {
			t.Fatalf("drop order = %v, want %v", order, want)
		}
	}
}

func TestTable_Close(t *testing.T) {
	table := NewTable()
	obs := &testObserver{}
	table.Subscribe(obs)

	table.Insert(1, scopeA, "a")
	table.Insert(1, scopeA, "b")

	if err := table.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	drops := 0
	for _, e := range obs.events {
		if e.Type == EventDropped {
			drops++
		}
	}
	if drops != 2 {
		t.Fatalf("Close should release every live resource, got %d drops", drops)
	}

	if h := table.Insert(1, scopeA, "c"); h != 0 {
		t.Fatal("Expected Insert to fail after Close")
	}
	if err := table.Close(); err != nil {
		t.Fatalf("second Close failed: %v", err)
	}
}

type dropCounter struct {
	count int
}

func (d *dropCounter) Drop() {
	d.count++
}

func TestTable_DropperInterface(t *testing.T) {
	table := NewTable()
	d := &dropCounter{}

	h := table.Insert(1, scopeA, d)
	table.Remove(h)

	if d.count != 1 {
		t.Fatalf("Expected Drop() to be called once, called %d times", d.count)
	}
}

func TestTable_Logging(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	prev := Logger()
	SetLogger(zap.New(core))
	defer SetLogger(prev)

	table := NewTable()
	h := table.Insert(1, scopeA, "x")
	table.Transfer(h, scopeB)

	moved := logs.FilterMessage("resource moved").All()
	if len(moved) != 1 {
		t.Fatalf("Expected 1 move log entry, got %d", len(moved))
	}
	fields := moved[0].ContextMap()
	if fields["from"] != "a" || fields["to"] != "b" {
		t.Fatalf("unexpected move fields: %v", fields)
	}
}
