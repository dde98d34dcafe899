package cacheupdate

import (
	"net/http"
	"testing"
	"time"
)

func TestGetCacheUpdates(t *testing.T) {
	req, _ := http.NewRequest("POST", "/lists/add", nil)
	h := http.Header{}
	h.Add("Cache-Update", "/lists; delay=2")
	h.Add("Cache-Update", "items, ../count")
	updates := GetCacheUpdates(req, h)
	if len(updates) != 3 {
		t.Fatalf("Updates are %+v", updates)
	}
	if updates[0].Path != "/lists" || updates[0].Delay != 2*time.Second {
		t.Fatalf("First update is %+v", updates[0])
	}
	if updates[1].Path != "/lists/items" || updates[1].Delay != 0 {
		t.Fatalf("Second update is %+v", updates[1])
	}
	if updates[2].Path != "/count" {
		t.Fatalf("Third update is %+v", updates[2])
	}
}

func TestSafeRequestHasNoUpdates(t *testing.T) {
	req, _ := http.NewRequest("GET", "/lists", nil)
	h := http.Header{}
	h.Add("Cache-Update", "/lists")
	if updates := GetCacheUpdates(req, h); len(updates) != 0 {
		t.Fatalf("Updates are %+v", updates)
	}
}
