// Package registry - Test thread-safe generic registry (dùng cho collections và per-shift locks).
package registry

import (
	"sync"
	"testing"
)

func TestRegistry_RegisterAndGet(t *testing.T) {
	r := NewRegistry[int]()

	isNew, err := r.Register("a", 1)
	if err != nil {
		t.Fatalf("Register trả về lỗi: %v", err)
	}
	if !isNew {
		t.Error("Register lần đầu phải trả về isNew = true")
	}

	isNew, err = r.Register("a", 2)
	if err != nil {
		t.Fatalf("Register ghi đè trả về lỗi: %v", err)
	}
	if isNew {
		t.Error("Register lần hai cùng key phải trả về isNew = false")
	}

	item, exists := r.Get("a")
	if !exists || item != 2 {
		t.Errorf("Get phải trả về giá trị ghi đè mới nhất, nhận được %d (exists=%v)", item, exists)
	}

	if _, err := r.Register("", 1); err == nil {
		t.Error("Register với name rỗng phải trả về lỗi")
	}
}

func TestRegistry_GetOrCreate_CreatorCalledOnce(t *testing.T) {
	r := NewRegistry[*sync.Mutex]()
	created := 0
	creator := func() (*sync.Mutex, error) {
		created++
		return &sync.Mutex{}, nil
	}

	first, err := r.GetOrCreate("shift-1", creator)
	if err != nil {
		t.Fatalf("GetOrCreate trả về lỗi: %v", err)
	}
	second, err := r.GetOrCreate("shift-1", creator)
	if err != nil {
		t.Fatalf("GetOrCreate lần hai trả về lỗi: %v", err)
	}

	if created != 1 {
		t.Errorf("creator phải được gọi đúng một lần cho mỗi key, được gọi %d lần", created)
	}
	if first != second {
		t.Error("GetOrCreate cùng key phải trả về cùng một instance (per-shift lock phụ thuộc vào điều này)")
	}

	other, err := r.GetOrCreate("shift-2", creator)
	if err != nil {
		t.Fatalf("GetOrCreate key khác trả về lỗi: %v", err)
	}
	if other == first {
		t.Error("key khác nhau phải có instance khác nhau")
	}
}

func TestRegistry_GetOrCreate_Concurrent(t *testing.T) {
	r := NewRegistry[*sync.Mutex]()
	var mu sync.Mutex
	created := 0

	var wg sync.WaitGroup
	results := make([]*sync.Mutex, 16)
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			item, err := r.GetOrCreate("shift-x", func() (*sync.Mutex, error) {
				mu.Lock()
				created++
				mu.Unlock()
				return &sync.Mutex{}, nil
			})
			if err != nil {
				t.Errorf("GetOrCreate đồng thời trả về lỗi: %v", err)
				return
			}
			results[idx] = item
		}(i)
	}
	wg.Wait()

	if created != 1 {
		t.Errorf("creator phải được gọi đúng một lần dù gọi đồng thời, được gọi %d lần", created)
	}
	for i := 1; i < len(results); i++ {
		if results[i] != results[0] {
			t.Fatal("mọi goroutine phải nhận cùng một instance cho cùng key")
		}
	}
}

func TestRegistry_Clear(t *testing.T) {
	r := NewRegistry[string]()
	r.Register("a", "x")

	deleted, err := r.Clear("a", nil)
	if err != nil || !deleted {
		t.Errorf("Clear item tồn tại phải trả về true, nhận được %v (err=%v)", deleted, err)
	}
	if _, exists := r.Get("a"); exists {
		t.Error("item đã Clear không được còn trong registry")
	}

	deleted, err = r.Clear("a", nil)
	if err != nil || deleted {
		t.Errorf("Clear item không tồn tại phải trả về false, nhận được %v (err=%v)", deleted, err)
	}
}
