package application

import (
	"errors"
	"testing"
	"time"

	"github.com/RealGoldAstro/roblox-playercount-proxy/middleware/ratelimit/domain"
)

type fakeStore struct {
	adm domain.Admission
	err error
}

func (s fakeStore) Admit(domain.Key, time.Time) (domain.Admission, error) {
	return s.adm, s.err
}

type panicStore struct{}

func (panicStore) Admit(domain.Key, time.Time) (domain.Admission, error) {
	panic("boom")
}

func TestService_Decide_AllowsWhenNoStore(t *testing.T) {
	svc := Service{}
	adm := svc.Decide("k")
	if !adm.Allowed {
		t.Fatalf("expected allowed")
	}
	if adm.RetryAfter != 0 {
		t.Fatalf("expected RetryAfter=0 when allowed, got %s", adm.RetryAfter)
	}
}

func TestService_Decide_PropagatesDenial(t *testing.T) {
	svc := Service{Store: fakeStore{adm: domain.Admission{Allowed: false, RetryAfter: time.Hour}}}
	adm := svc.Decide("k")
	if adm.Allowed {
		t.Fatalf("expected denied")
	}
	if adm.RetryAfter != time.Hour {
		t.Fatalf("expected RetryAfter=1h, got %s", adm.RetryAfter)
	}
}

func TestService_Decide_FailsOpenOnStoreError(t *testing.T) {
	svc := Service{Store: fakeStore{adm: domain.Admission{}, err: errors.New("store down")}}
	adm := svc.Decide("k")
	if !adm.Allowed {
		t.Fatalf("expected fail-open on store error")
	}
}

func TestService_Decide_FailsOpenOnPanic(t *testing.T) {
	svc := Service{Store: panicStore{}}
	adm := svc.Decide("k")
	if !adm.Allowed {
		t.Fatalf("expected fail-open on panic")
	}
}
