package metrics

import (
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestObserveAuth(t *testing.T) {
	ok := AuthEventsTotal.WithLabelValues("login", OutcomeSuccess)
	failed := AuthEventsTotal.WithLabelValues("login", OutcomeFailure)
	okBefore, failedBefore := testutil.ToFloat64(ok), testutil.ToFloat64(failed)

	ObserveAuth("login", nil)
	ObserveAuth("login", errors.New("boom"))
	ObserveAuth("login", errors.New("boom"))

	assert.Equal(t, okBefore+1, testutil.ToFloat64(ok))
	assert.Equal(t, failedBefore+2, testutil.ToFloat64(failed))
}

func TestObserveNotification(t *testing.T) {
	c := NotificationsTotal.WithLabelValues("otp", OutcomeFailure)
	before := testutil.ToFloat64(c)

	ObserveNotification("otp", errors.New("smtp down"))

	assert.Equal(t, before+1, testutil.ToFloat64(c))
}
