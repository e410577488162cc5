package common

// CommissionRate is the fixed fraction of a bid's amount a provider must be
// able to cover from prepaid balance before the bid is accepted for submission.
const CommissionRate = 0.001

// Commission computes the submission commission for a bid amount.
func Commission(amount int64) int64 {
	return int64(float64(amount) * CommissionRate)
}
