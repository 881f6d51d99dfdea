package navstate

import (
	"fmt"
	"sync"
	"testing"
	"time"

	"employee-portal/internal/capture"
	"employee-portal/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_Employees(t *testing.T) {
	s := NewStore()
	list := []models.Employee{{Name: "Asha"}, {Name: "Ravi"}}
	s.PutEmployees("k1", list)

	// caller mutations do not leak into the store
	list[0].Name = "changed"

	got, ok := s.Employee("k1", 0)
	require.True(t, ok)
	assert.Equal(t, "Asha", got.Name)

	got, ok = s.Employee("k1", 1)
	require.True(t, ok)
	assert.Equal(t, "Ravi", got.Name)

	_, ok = s.Employee("k1", 2)
	assert.False(t, ok)
	_, ok = s.Employee("k1", -1)
	assert.False(t, ok)
	_, ok = s.Employee("other", 0)
	assert.False(t, ok)
}

func TestStore_PhotoIsConsumedOnce(t *testing.T) {
	s := NewStore()
	s.PutPhoto("k1", capture.Image{MIME: "image/png", Data: []byte{1, 2, 3}, EmployeeIndex: 4})

	img, ok := s.TakePhoto("k1")
	require.True(t, ok)
	assert.Equal(t, 4, img.EmployeeIndex)

	_, ok = s.TakePhoto("k1")
	assert.False(t, ok)
}

func TestStore_EmptyKeyIgnored(t *testing.T) {
	s := NewStore()
	s.PutEmployees("", []models.Employee{{Name: "Asha"}})
	s.PutPhoto("", capture.Image{})
	assert.Equal(t, 0, s.Len())
}

func TestStore_Clear(t *testing.T) {
	s := NewStore()
	s.PutEmployees("k1", []models.Employee{{Name: "Asha"}})
	s.PutPhoto("k1", capture.Image{})
	s.Clear("k1")

	_, ok := s.Employee("k1", 0)
	assert.False(t, ok)
	_, ok = s.TakePhoto("k1")
	assert.False(t, ok)
	assert.Equal(t, 0, s.Len())
}

func TestStore_ConcurrentAccess(t *testing.T) {
	s := NewStore()
	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			key := fmt.Sprintf("k%d", i%4)
			s.PutEmployees(key, []models.Employee{{Name: key}})
			s.Employee(key, 0)
			s.PutPhoto(key, capture.Image{})
			s.TakePhoto(key)
		}(i)
	}
	wg.Wait()
	assert.Equal(t, 4, s.Len())
}

func TestStore_PruneIdleSessions(t *testing.T) {
	s := NewStore()
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	s.PutEmployees("stale", []models.Employee{{Name: "Asha"}})
	clock = clock.Add(90 * time.Minute)
	s.PutEmployees("fresh", []models.Employee{{Name: "Ravi"}})

	assert.Equal(t, 1, s.Prune(time.Hour))
	assert.Equal(t, 1, s.Len())

	_, ok := s.Employee("stale", 0)
	assert.False(t, ok)
	got, ok := s.Employee("fresh", 0)
	require.True(t, ok)
	assert.Equal(t, "Ravi", got.Name)
}

func TestStore_ReadsKeepSessionAlive(t *testing.T) {
	s := NewStore()
	clock := time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }

	s.PutEmployees("reader", []models.Employee{{Name: "Asha"}})
	clock = clock.Add(50 * time.Minute)
	_, ok := s.Employee("reader", 0)
	require.True(t, ok)

	// an out-of-range index still counts as activity
	clock = clock.Add(50 * time.Minute)
	_, ok = s.Employee("reader", 9)
	assert.False(t, ok)

	clock = clock.Add(30 * time.Minute)
	assert.Equal(t, 0, s.Prune(time.Hour))
	assert.Equal(t, 1, s.Len())

	clock = clock.Add(31 * time.Minute)
	assert.Equal(t, 1, s.Prune(time.Hour))
	assert.Equal(t, 0, s.Len())
}
