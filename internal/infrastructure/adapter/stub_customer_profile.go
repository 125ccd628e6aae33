package adapter

import (
	"context"
	"crypto/sha256"
	"encoding/binary"
	"fmt"

	"github.com/Skenwise/loan-hub-zambia-sub003/internal/domain/model"
)

// StubCustomerProfileReader is a development/test adapter that returns a
// deterministic risk profile derived from the customer ID.
// It implements port.CustomerProfileReader.
type StubCustomerProfileReader struct{}

// NewStubCustomerProfileReader creates a new stub adapter.
func NewStubCustomerProfileReader() *StubCustomerProfileReader {
	return &StubCustomerProfileReader{}
}

// GetProfile returns a deterministic profile based on a hash of the customer
// ID. This allows repeatable test scenarios.
func (s *StubCustomerProfileReader) GetProfile(_ context.Context, _, customerID string) (model.CustomerRiskProfile, error) {
	if customerID == "" {
		return model.CustomerRiskProfile{}, fmt.Errorf("customer ID is required")
	}
	return simulateProfile(customerID), nil
}

// simulateProfile derives a score between 300 and 850 plus a KYC flag from
// the customer ID hash, so the same customer always yields the same profile.
func simulateProfile(customerID string) model.CustomerRiskProfile {
	h := sha256.Sum256([]byte(customerID))
	num := binary.BigEndian.Uint32(h[:4])
	score := 300 + int(num%551) // range [300, 850]

	return model.CustomerRiskProfile{
		CustomerID:  customerID,
		CreditScore: score,
		KYCVerified: h[4]%10 != 0, // roughly 9 in 10 verified
	}
}
