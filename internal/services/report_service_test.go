package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"institute-backend/internal/models"
)

func TestSettledPaise(t *testing.T) {
	// A settled installment keeps its received amount in AmountPaise.
	paid := models.InstallmentView{AmountPaise: 3000, Paid: true, PaidAmountPaise: 0}
	assert.Equal(t, int64(3000), settledPaise(paid))

	partial := models.InstallmentView{AmountPaise: 3000, Paid: false, PaidAmountPaise: 1200}
	assert.Equal(t, int64(1200), settledPaise(partial))

	unpaid := models.InstallmentView{AmountPaise: 3000}
	assert.Equal(t, int64(0), settledPaise(unpaid))
}
