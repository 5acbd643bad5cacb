package statistics

import (
	"fmt"
	"math"
	"sort"
)

// SessionResult represents the outcome of one simulated craps session
type SessionResult struct {
	Net     int   // Final bankroll plus exposure minus the starting bankroll
	Rolls   int   // Rolls played before the session stopped
	Wagered int   // Total money moved from the bankroll onto the table
	Seed    int64 // RNG seed for this session (for replay)
	Busted  bool  // Bankroll and exposure both reached zero
}

// Statistics tracks aggregate results over many sessions
type Statistics struct {
	Sessions int
	SumNet   float64
	SumNet2  float64   // Sum of squares for variance calculation
	Values   []float64 // Store all values for median/percentile calculation

	Wins   int
	Losses int
	Pushes int
	Busts  int

	WinNet  float64 // Net from winning sessions
	LossNet float64 // Net from losing sessions (negative)

	TotalRolls   int
	TotalWagered int

	BestNet  int
	WorstNet int
}

// Mean returns the arithmetic mean net result per session
func (s *Statistics) Mean() float64 {
	if s.Sessions == 0 {
		return 0
	}
	return s.SumNet / float64(s.Sessions)
}

// Variance returns the sample variance of all results
func (s *Statistics) Variance() float64 {
	if s.Sessions < 2 {
		return 0
	}
	mean := s.Mean()
	return (s.SumNet2 - float64(s.Sessions)*mean*mean) / float64(s.Sessions-1)
}

// StdDev returns the sample standard deviation of all results
func (s *Statistics) StdDev() float64 {
	return math.Sqrt(s.Variance())
}

// StdError returns the standard error of the mean
func (s *Statistics) StdError() float64 {
	if s.Sessions == 0 {
		return 0
	}
	return s.StdDev() / math.Sqrt(float64(s.Sessions))
}

// ConfidenceInterval95 returns the 95% confidence interval for the mean
func (s *Statistics) ConfidenceInterval95() (float64, float64) {
	mean := s.Mean()
	margin := 1.96 * s.StdError()
	return mean - margin, mean + margin
}

// Add incorporates a new session result into the statistics
func (s *Statistics) Add(result SessionResult) {
	net := float64(result.Net)
	if s.Sessions == 0 || result.Net > s.BestNet {
		s.BestNet = result.Net
	}
	if s.Sessions == 0 || result.Net < s.WorstNet {
		s.WorstNet = result.Net
	}

	s.Sessions++
	s.SumNet += net
	s.SumNet2 += net * net
	s.Values = append(s.Values, net)

	switch {
	case result.Net > 0:
		s.Wins++
		s.WinNet += net
	case result.Net < 0:
		s.Losses++
		s.LossNet += net
	default:
		s.Pushes++
	}
	if result.Busted {
		s.Busts++
	}

	s.TotalRolls += result.Rolls
	s.TotalWagered += result.Wagered
}

// Merge folds other into s. Workers keep private Statistics and merge at the end.
func (s *Statistics) Merge(other *Statistics) {
	if other == nil || other.Sessions == 0 {
		return
	}
	if s.Sessions == 0 || other.BestNet > s.BestNet {
		s.BestNet = other.BestNet
	}
	if s.Sessions == 0 || other.WorstNet < s.WorstNet {
		s.WorstNet = other.WorstNet
	}
	s.Sessions += other.Sessions
	s.SumNet += other.SumNet
	s.SumNet2 += other.SumNet2
	s.Values = append(s.Values, other.Values...)
	s.Wins += other.Wins
	s.Losses += other.Losses
	s.Pushes += other.Pushes
	s.Busts += other.Busts
	s.WinNet += other.WinNet
	s.LossNet += other.LossNet
	s.TotalRolls += other.TotalRolls
	s.TotalWagered += other.TotalWagered
}

// Median returns the median value of all results
func (s *Statistics) Median() float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()
	n := len(sorted)
	if n%2 == 0 {
		return (sorted[n/2-1] + sorted[n/2]) / 2
	}
	return sorted[n/2]
}

// Percentile returns the value at the given percentile (0.0 to 1.0)
func (s *Statistics) Percentile(p float64) float64 {
	if len(s.Values) == 0 {
		return 0
	}
	sorted := s.sorted()

	index := p * float64(len(sorted)-1)
	lower := int(index)
	upper := lower + 1

	if upper >= len(sorted) {
		return sorted[len(sorted)-1]
	}

	weight := index - float64(lower)
	return sorted[lower]*(1-weight) + sorted[upper]*weight
}

func (s *Statistics) sorted() []float64 {
	sorted := make([]float64, len(s.Values))
	copy(sorted, s.Values)
	sort.Float64s(sorted)
	return sorted
}

// WinRate returns the fraction of sessions that finished ahead
func (s *Statistics) WinRate() float64 {
	if s.Sessions == 0 {
		return 0
	}
	return float64(s.Wins) / float64(s.Sessions)
}

// BustRate returns the fraction of sessions that lost the whole bankroll
func (s *Statistics) BustRate() float64 {
	if s.Sessions == 0 {
		return 0
	}
	return float64(s.Busts) / float64(s.Sessions)
}

// MeanRolls returns the average session length in rolls
func (s *Statistics) MeanRolls() float64 {
	if s.Sessions == 0 {
		return 0
	}
	return float64(s.TotalRolls) / float64(s.Sessions)
}

// HouseEdge estimates the house advantage as total loss over total action.
// Positive means the player lost money.
func (s *Statistics) HouseEdge() float64 {
	if s.TotalWagered == 0 {
		return 0
	}
	return -s.SumNet / float64(s.TotalWagered)
}

// IsLedgerBalanced checks if the accounting is consistent
func (s *Statistics) IsLedgerBalanced() bool {
	return math.Abs(s.SumNet-s.WinNet-s.LossNet) <= 1e-6
}

// Validate performs consistency checks on the statistics data
func (s *Statistics) Validate() error {
	if !s.IsLedgerBalanced() {
		return fmt.Errorf("ledger mismatch: SumNet=%.2f, WinNet=%.2f, LossNet=%.2f",
			s.SumNet, s.WinNet, s.LossNet)
	}
	if s.Sessions <= 0 {
		return fmt.Errorf("invalid sessions count: %d", s.Sessions)
	}
	if len(s.Values) != s.Sessions {
		return fmt.Errorf("values array length (%d) does not match sessions count (%d)",
			len(s.Values), s.Sessions)
	}
	if s.Wins+s.Losses+s.Pushes != s.Sessions {
		return fmt.Errorf("outcomes (%d wins, %d losses, %d pushes) do not add up to %d sessions",
			s.Wins, s.Losses, s.Pushes, s.Sessions)
	}
	if s.Busts > s.Losses {
		return fmt.Errorf("busts (%d) exceed losing sessions (%d)", s.Busts, s.Losses)
	}
	return nil
}
