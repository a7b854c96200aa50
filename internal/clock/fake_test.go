package clock

import (
	"reflect"
	"testing"
	"time"
)

func TestFake_Advance(t *testing.T) {
	c := NewFake(time.Unix(0, 0))
	var fired []string

	c.AfterFunc(300*time.Millisecond, func() { fired = append(fired, "b") })
	c.AfterFunc(100*time.Millisecond, func() { fired = append(fired, "a") })
	stopped := c.AfterFunc(200*time.Millisecond, func() { fired = append(fired, "x") })

	if !stopped.Stop() {
		t.Fatal("Stop() = false on a pending timer")
	}
	if c.Pending() != 2 {
		t.Fatalf("Pending() = %d, want 2", c.Pending())
	}

	c.Advance(250 * time.Millisecond)
	if !reflect.DeepEqual(fired, []string{"a"}) {
		t.Fatalf("fired = %v after 250ms", fired)
	}

	c.Advance(50 * time.Millisecond)
	if !reflect.DeepEqual(fired, []string{"a", "b"}) {
		t.Fatalf("fired = %v after 300ms", fired)
	}
	if got := c.Now(); !got.Equal(time.Unix(0, 0).Add(300 * time.Millisecond)) {
		t.Errorf("Now() = %v", got)
	}
}

func TestFake_CallbackSchedules(t *testing.T) {
	c := NewFake(time.Unix(0, 0))
	count := 0
	var tick func()
	tick = func() {
		count++
		if count < 3 {
			c.AfterFunc(time.Second, tick)
		}
	}
	c.AfterFunc(time.Second, tick)

	c.Advance(10 * time.Second)
	if count != 3 {
		t.Errorf("count = %d, want 3", count)
	}
}
