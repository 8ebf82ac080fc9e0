package oracle_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/ecoperks/ecosort/internal/adapters/oracle"
	. "github.com/smartystreets/goconvey/convey"
)

// flakyClassifier fails a fixed number of times before answering.
type flakyClassifier struct {
	mu       sync.Mutex
	failures int
	err      error
	answer   string
	calls    int
}

func (f *flakyClassifier) Classify(_ context.Context, _ []byte) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls++
	if f.calls <= f.failures {
		return "", f.err
	}
	return f.answer, nil
}

func (f *flakyClassifier) callCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

// stallClassifier hangs until the call's context is done for the first
// stalls calls, then answers.
type stallClassifier struct {
	mu     sync.Mutex
	stalls int
	answer string
	calls  int
}

func (s *stallClassifier) Classify(ctx context.Context, _ []byte) (string, error) {
	s.mu.Lock()
	s.calls++
	n := s.calls
	s.mu.Unlock()
	if n <= s.stalls {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return s.answer, nil
}

func (s *stallClassifier) callCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.calls
}

func fastBackoff() oracle.RetryOption {
	return oracle.WithBackoff(time.Millisecond, 2*time.Millisecond, 1.0)
}

func TestRetrySuccess(t *testing.T) {
	Convey("Given a classifier that succeeds immediately", t, func() {
		inner := &flakyClassifier{answer: "trash"}
		r := oracle.WithRetry(inner, fastBackoff())

		Convey("When classifying", func() {
			text, err := r.Classify(context.Background(), nil)
			So(err, ShouldBeNil)
			So(text, ShouldEqual, "trash")
			So(inner.callCount(), ShouldEqual, 1)
		})
	})
}

func TestRetryTransient(t *testing.T) {
	Convey("Given a classifier that fails once with a transient error", t, func() {
		inner := &flakyClassifier{
			failures: 1,
			err:      oracle.ErrUnavailable,
			answer:   "compost",
		}
		r := oracle.WithRetry(inner, oracle.WithMaxAttempts(3), fastBackoff())

		Convey("When classifying", func() {
			text, err := r.Classify(context.Background(), nil)
			So(err, ShouldBeNil)
			So(text, ShouldEqual, "compost")
			So(inner.callCount(), ShouldEqual, 2)
		})
	})

	Convey("Given a classifier that is rate limited for every attempt", t, func() {
		inner := &flakyClassifier{
			failures: 10,
			err:      oracle.ErrRateLimited,
		}
		r := oracle.WithRetry(inner, oracle.WithMaxAttempts(3), fastBackoff())

		Convey("When classifying", func() {
			_, err := r.Classify(context.Background(), nil)
			So(errors.Is(err, oracle.ErrRateLimited), ShouldBeTrue)
			So(inner.callCount(), ShouldEqual, 3)
		})
	})
}

func TestRetryNonTransient(t *testing.T) {
	Convey("Given a classifier that fails with a permanent error", t, func() {
		inner := &flakyClassifier{
			failures: 10,
			err:      oracle.ErrBadImage,
		}
		r := oracle.WithRetry(inner, oracle.WithMaxAttempts(3), fastBackoff())

		Convey("When classifying", func() {
			_, err := r.Classify(context.Background(), nil)
			So(errors.Is(err, oracle.ErrBadImage), ShouldBeTrue)
			So(inner.callCount(), ShouldEqual, 1)
		})
	})
}

func TestRetryAttemptTimeout(t *testing.T) {
	Convey("Given a classifier that hangs on its first call", t, func() {
		inner := &stallClassifier{stalls: 1, answer: "compost"}
		r := oracle.WithRetry(inner,
			oracle.WithMaxAttempts(2),
			oracle.WithAttemptTimeout(20*time.Millisecond),
			fastBackoff(),
		)

		Convey("When classifying the timed-out attempt is retried", func() {
			text, err := r.Classify(context.Background(), nil)
			So(err, ShouldBeNil)
			So(text, ShouldEqual, "compost")
			So(inner.callCount(), ShouldEqual, 2)
		})
	})

	Convey("Given a classifier that hangs on every call", t, func() {
		inner := &stallClassifier{stalls: 10}
		r := oracle.WithRetry(inner,
			oracle.WithMaxAttempts(2),
			oracle.WithAttemptTimeout(20*time.Millisecond),
			fastBackoff(),
		)

		Convey("When classifying the attempt budget still bounds the call", func() {
			_, err := r.Classify(context.Background(), nil)
			So(err, ShouldNotBeNil)
			So(inner.callCount(), ShouldEqual, 2)
		})
	})
}

func TestRetryCancellation(t *testing.T) {
	Convey("Given a canceled context", t, func() {
		inner := &flakyClassifier{
			failures: 10,
			err:      oracle.ErrUnavailable,
		}
		r := oracle.WithRetry(inner, oracle.WithMaxAttempts(5), fastBackoff())

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		Convey("When classifying the call is not retried", func() {
			_, err := r.Classify(ctx, nil)
			So(err, ShouldNotBeNil)
			So(inner.callCount(), ShouldEqual, 1)
		})
	})
}

func TestMockClassifier(t *testing.T) {
	Convey("Given a mock classifier", t, func() {
		m := oracle.NewMockClassifier("This looks like recyclable plastic.")

		Convey("When classifying it returns the canned answer", func() {
			text, err := m.Classify(context.Background(), []byte{1, 2})
			So(err, ShouldBeNil)
			So(text, ShouldContainSubstring, "recyclable")
			So(m.Calls(), ShouldEqual, 1)
		})

		Convey("When the response is swapped for an error", func() {
			want := errors.New("boom")
			m.SetResponse("", want)
			_, err := m.Classify(context.Background(), nil)
			So(err, ShouldEqual, want)
		})
	})
}

func TestErrorKinds(t *testing.T) {
	Convey("Given the oracle error kinds", t, func() {
		Convey("Then IsOracle matches every oracle failure", func() {
			So(oracle.IsOracle(oracle.ErrOracle), ShouldBeTrue)
			So(oracle.IsOracle(oracle.ErrRateLimited), ShouldBeTrue)
			So(oracle.IsOracle(oracle.ErrUnavailable), ShouldBeTrue)
			So(oracle.IsOracle(oracle.ErrEmptyResponse), ShouldBeTrue)
		})

		Convey("And it rejects unrelated errors", func() {
			So(oracle.IsOracle(errors.New("boom")), ShouldBeFalse)
			So(oracle.IsOracle(oracle.ErrBadImage), ShouldBeFalse)
		})
	})
}
