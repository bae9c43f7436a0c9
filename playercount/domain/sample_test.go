package domain

import "testing"

func TestEncodeParseMember_RoundTrip(t *testing.T) {
	s := Sample{Timestamp: 1756200000000, Value: 42}

	m := EncodeMember(s)
	if m != "1756200000000:42" {
		t.Fatalf("unexpected encoding %q", m)
	}

	got, err := ParseMember(m)
	if err != nil {
		t.Fatalf("unexpected parse error: %v", err)
	}
	if got != s {
		t.Fatalf("expected %+v, got %+v", s, got)
	}
}

func TestParseMember_RejectsMalformed(t *testing.T) {
	bad := []string{
		"",
		"123",
		"abc:42",
		"123:xyz",
		"-1:42",
		"123:-5",
		"1:2:3",
		":42",
		"123:",
	}
	for _, m := range bad {
		if _, err := ParseMember(m); err == nil {
			t.Fatalf("expected parse error for %q", m)
		}
	}
}

func TestDecodeMembers_DropsMalformed(t *testing.T) {
	members := []string{"100:7", "garbage", "200:9", "300:"}

	samples := DecodeMembers(members)
	if len(samples) != 2 {
		t.Fatalf("expected 2 decoded samples, got %d", len(samples))
	}
	if samples[0].Value != 7 || samples[1].Value != 9 {
		t.Fatalf("unexpected samples %+v", samples)
	}
}

func TestPeakOf_LiveValueAlwaysParticipates(t *testing.T) {
	samples := []Sample{{Timestamp: 1, Value: 10}, {Timestamp: 2, Value: 30}}

	if got := PeakOf(samples, 5); got != 30 {
		t.Fatalf("expected 30, got %d", got)
	}
	// valor ao vivo acima das amostras ganha
	if got := PeakOf(samples, 99); got != 99 {
		t.Fatalf("expected 99, got %d", got)
	}
}

func TestPeakOf_EmptyWindowFallsBackToCurrent(t *testing.T) {
	if got := PeakOf(nil, 42); got != 42 {
		t.Fatalf("expected 42, got %d", got)
	}
}

func TestPeakOf_DiscardsNonPositiveValues(t *testing.T) {
	samples := []Sample{{Timestamp: 1, Value: 0}, {Timestamp: 2, Value: 3}}

	if got := PeakOf(samples, 1); got != 3 {
		t.Fatalf("expected 3, got %d", got)
	}
}
