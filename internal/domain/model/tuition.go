//revive:disable-next-line:var-naming // legacy package name widely used across the project
package model

// TuitionStatus is the payment state of one student's tuition.
type TuitionStatus string

const (
	TuitionPaid   TuitionStatus = "paid"
	TuitionUnpaid TuitionStatus = "unpaid"
)

// TuitionBatch is a named charge applied to every member of a class.
type TuitionBatch struct {
	ID        ID        `json:"id"`
	Title     string    `json:"title"`
	Amount    Number    `json:"amount"`
	ClassID   ID        `json:"class_id"`
	CreatedAt Timestamp `json:"created_at"`
}

// TuitionBatchInput is the create body for a batch.
type TuitionBatchInput struct {
	Title   string  `json:"title"`
	ClassID ID      `json:"class_id"`
	Amount  float64 `json:"amount"`
}

// Tuition is one student's line in a batch, as seen by admins.
type Tuition struct {
	ID          ID            `json:"id"`
	StudentName string        `json:"student_name"`
	Status      TuitionStatus `json:"status"`
	PaidAt      Timestamp     `json:"paid_at"`
}

// Paid reports whether the tuition has been settled.
func (t Tuition) Paid() bool { return t.Status == TuitionPaid }

// StudentTuition is a tuition line as seen by the student it belongs to.
type StudentTuition struct {
	ID     ID            `json:"id"`
	Title  string        `json:"title"`
	Amount Number        `json:"amount"`
	Status TuitionStatus `json:"status"`
	PaidAt Timestamp     `json:"paid_at"`
}

// Paid reports whether the tuition has been settled.
func (t StudentTuition) Paid() bool { return t.Status == TuitionPaid }

// TuitionSummary totals a batch's collection progress.
type TuitionSummary struct {
	Expected  float64
	Collected float64
	Remaining float64
	PaidCount int
	Total     int
}

// SummarizeTuitions totals the tuitions of a batch. A nil batch yields a zero summary.
func SummarizeTuitions(batch *TuitionBatch, tuitions []Tuition) TuitionSummary {
	if batch == nil {
		return TuitionSummary{}
	}
	paid := 0
	for _, t := range tuitions {
		if t.Paid() {
			paid++
		}
	}
	amount := batch.Amount.Float64()
	expected := float64(len(tuitions)) * amount
	collected := float64(paid) * amount
	return TuitionSummary{
		Expected:  expected,
		Collected: collected,
		Remaining: expected - collected,
		PaidCount: paid,
		Total:     len(tuitions),
	}
}

// FindBatch returns the batch with the given id, or the first batch when id is empty or unknown.
func FindBatch(batches []TuitionBatch, id string) *TuitionBatch {
	if len(batches) == 0 {
		return nil
	}
	for i := range batches {
		if string(batches[i].ID) == id {
			return &batches[i]
		}
	}
	return &batches[0]
}
