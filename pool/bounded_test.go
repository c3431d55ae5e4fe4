package pool

import (
	"errors"
	"sync/atomic"
	"testing"

	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"go.uber.org/zap"

	"github.com/hemal-shah/poolkit/internal"
)

type resource struct {
	items []int
	owner atomic.Int64
}

func (r *resource) Len() int {
	return len(r.items)
}

func (r *resource) Clear() {
	r.items = r.items[:0]
}

func resourceFactory() Funcs[*resource] {
	return NewFuncs(func() *resource { return &resource{} }, internal.Passivate[*resource])
}

// MockFactory is a mock implementation of Factory
type MockFactory struct {
	mock.Mock
}

func (m *MockFactory) Make() (*resource, error) {
	args := m.Called()
	r, _ := args.Get(0).(*resource)
	return r, args.Error(1)
}

func (m *MockFactory) Destroy(obj *resource) {
	m.Called(obj)
}

func (m *MockFactory) Validate(obj *resource) bool {
	args := m.Called(obj)
	return args.Bool(0)
}

func (m *MockFactory) Passivate(obj *resource) {
	m.Called(obj)
}

func TestNewRejectsBadArguments(t *testing.T) {
	_, err := New[*resource](nil, 4)
	assert.ErrorIs(t, err, ErrNilFactory)

	_, err = New[*resource](resourceFactory(), 0)
	assert.ErrorIs(t, err, ErrInvalidCapacity)

	_, err = New[*resource](resourceFactory(), -3)
	assert.ErrorIs(t, err, ErrInvalidCapacity)
}

func TestNewDefaults(t *testing.T) {
	p, err := New[*resource](resourceFactory(), 4)
	require.NoError(t, err)
	assert.Equal(t, "*pool.resource", p.Name())
	assert.Equal(t, 4, p.Cap())
	assert.Equal(t, 0, p.Len())

	p, err = New[*resource](resourceFactory(), 4, WithName("widgets"), WithLogger(zap.NewNop()))
	require.NoError(t, err)
	assert.Equal(t, "widgets", p.Name())
}

func TestPrefill(t *testing.T) {
	p, err := New[*resource](resourceFactory(), 4, WithPrefill(10))
	require.NoError(t, err)
	assert.Equal(t, 4, p.Len())
	assert.Equal(t, uint64(4), p.Stats().Created)

	_, err = p.Acquire()
	require.NoError(t, err)
	assert.Equal(t, uint64(1), p.Stats().Reused)
}

func TestPrefillPropagatesMakeError(t *testing.T) {
	boom := errors.New("boom")
	_, err := New[*resource](Funcs[*resource]{
		MakeFn: func() (*resource, error) { return nil, boom },
	}, 2, WithPrefill(1))
	assert.ErrorIs(t, err, boom)
}

// Capacity 2: acquire A and B, release A, B and a new C. C is dropped.
func TestReleaseDropsOnOverflow(t *testing.T) {
	p, err := New[*resource](resourceFactory(), 2)
	require.NoError(t, err)

	a, err := p.Acquire()
	require.NoError(t, err)
	b, err := p.Acquire()
	require.NoError(t, err)
	c := &resource{}

	p.Release(a)
	p.Release(b)
	p.Release(c)

	assert.Equal(t, 2, p.Len())
	stats := p.Stats()
	assert.Equal(t, uint64(2), stats.Released)
	assert.Equal(t, uint64(1), stats.Dropped)

	got := map[*resource]bool{}
	for i := 0; i < 2; i++ {
		r, err := p.Acquire()
		require.NoError(t, err)
		got[r] = true
	}
	assert.True(t, got[a])
	assert.True(t, got[b])
	assert.False(t, got[c])
}

func TestIdleNeverExceedsCapacity(t *testing.T) {
	for _, n := range []int{1, 2, 3, 7, 16, 33} {
		p, err := New[*resource](resourceFactory(), n)
		require.NoError(t, err)
		for k := 0; k < n+5; k++ {
			p.Release(&resource{})
		}
		assert.Equal(t, n, p.Len(), "capacity %d", n)
		assert.Equal(t, uint64(5), p.Stats().Dropped, "capacity %d", n)
	}
}

// Acquire A, put 3 elements in it, release it: the next acquire sees 0 elements.
func TestReacquiredObjectIsEmpty(t *testing.T) {
	p, err := New[*resource](resourceFactory(), 4)
	require.NoError(t, err)

	a, err := p.Acquire()
	require.NoError(t, err)
	a.items = append(a.items, 1, 2, 3)
	p.Release(a)

	b, err := p.Acquire()
	require.NoError(t, err)
	assert.Same(t, a, b)
	assert.Zero(t, b.Len())
	assert.GreaterOrEqual(t, cap(b.items), 3)
}

func TestReleasePassivatesOnce(t *testing.T) {
	m := &MockFactory{}
	r := &resource{}
	m.On("Make").Return(r, nil).Once()
	m.On("Validate", r).Return(true)
	m.On("Passivate", r).Return()

	p, err := New[*resource](m, 2)
	require.NoError(t, err)

	got, err := p.Acquire()
	require.NoError(t, err)
	p.Release(got)
	assert.Equal(t, 1, p.Len())

	got, err = p.Acquire()
	require.NoError(t, err)
	assert.Same(t, r, got)
	m.AssertNumberOfCalls(t, "Passivate", 1)
	m.AssertNumberOfCalls(t, "Make", 1)
}

func TestPassivateEmptyResourceIsStillEnqueued(t *testing.T) {
	clears := 0
	p, err := New[*resource](Funcs[*resource]{
		MakeFn: func() (*resource, error) { return &resource{}, nil },
		PassivateFn: func(r *resource) {
			if r.Len() > 0 {
				clears++
				r.Clear()
			}
		},
	}, 2)
	require.NoError(t, err)

	r, err := p.Acquire()
	require.NoError(t, err)
	p.Release(r)

	assert.Zero(t, clears)
	assert.Equal(t, 1, p.Len())
}

// A factory failing on its second call: the first acquire works, the second surfaces the error.
func TestAcquirePropagatesMakeError(t *testing.T) {
	boom := errors.New("out of widgets")
	m := &MockFactory{}
	m.On("Make").Return(&resource{}, nil).Once()
	m.On("Make").Return(nil, boom).Once()
	m.On("Validate", mock.Anything).Return(true)

	p, err := New[*resource](m, 2)
	require.NoError(t, err)

	first, err := p.Acquire()
	require.NoError(t, err)
	require.NotNil(t, first)

	second, err := p.Acquire()
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, second)
	assert.Equal(t, uint64(1), p.Stats().MakeErrors)
	m.AssertExpectations(t)
}

func TestAcquireDestroysInvalidIdleObjects(t *testing.T) {
	stale := &resource{}
	fresh := &resource{}
	m := &MockFactory{}
	m.On("Passivate", stale).Return()
	m.On("Validate", stale).Return(false)
	m.On("Destroy", stale).Return()
	m.On("Make").Return(fresh, nil).Once()
	m.On("Validate", fresh).Return(true)

	p, err := New[*resource](m, 2)
	require.NoError(t, err)
	p.Release(stale)

	got, err := p.Acquire()
	require.NoError(t, err)
	assert.Same(t, fresh, got)
	assert.Equal(t, 0, p.Len())
	assert.Equal(t, uint64(1), p.Stats().Destroyed)
	m.AssertExpectations(t)
}

func TestAcquireGivesUpAfterRepeatedValidationFailures(t *testing.T) {
	made := 0
	destroyed := 0
	p, err := New[*resource](Funcs[*resource]{
		MakeFn: func() (*resource, error) {
			made++
			return &resource{}, nil
		},
		ValidateFn: func(*resource) bool { return false },
		DestroyFn:  func(*resource) { destroyed++ },
	}, 2, WithMaxValidationAttempts(5))
	require.NoError(t, err)

	_, err = p.Acquire()
	assert.ErrorIs(t, err, ErrValidationFailed)
	assert.Equal(t, 5, made)
	assert.Equal(t, 5, destroyed)
}

func TestActivateRunsOnEveryHandout(t *testing.T) {
	activated := 0
	f := resourceFactory()
	f.ActivateFn = func(*resource) { activated++ }
	p, err := New[*resource](f, 2)
	require.NoError(t, err)

	r, err := p.Acquire()
	require.NoError(t, err)
	p.Release(r)
	_, err = p.Acquire()
	require.NoError(t, err)

	assert.Equal(t, 2, activated)
}

func TestConcurrentAcquireReleaseNoCrossTalk(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())

	workers, cycles := 100, 10000
	if testing.Short() {
		cycles = 500
	}

	p, err := New[*resource](resourceFactory(), 16)
	require.NoError(t, err)

	var violations atomic.Int64
	var wg conc.WaitGroup
	for w := 1; w <= workers; w++ {
		id := int64(w)
		wg.Go(func() {
			for i := 0; i < cycles; i++ {
				r, err := p.Acquire()
				if err != nil {
					violations.Add(1)
					return
				}
				if !r.owner.CompareAndSwap(0, id) || r.Len() != 0 {
					violations.Add(1)
				}
				for j := 0; j < 4; j++ {
					r.items = append(r.items, int(id))
				}
				for _, v := range r.items {
					if v != int(id) {
						violations.Add(1)
						break
					}
				}
				r.owner.Store(0)
				p.Release(r)
			}
		})
	}
	wg.Wait()

	assert.Zero(t, violations.Load())
	assert.LessOrEqual(t, p.Len(), 16)
	stats := p.Stats()
	assert.Equal(t, uint64(workers*cycles), stats.Created+stats.Reused)
}
