package store

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mid-March reference instant; the window under test is March 2025.
var march = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

func (s *StoreSuite) addEntry(userID, categoryID uint, amt string, at time.Time) {
	_, err := s.store.CreateEntry(userID, EntryParams{
		Description:   "test entry",
		CategoryID:    categoryID,
		Amount:        amount(amt),
		EffectiveDate: at,
	})
	require.NoError(s.T(), err)
}

func (s *StoreSuite) incomeCategory(userID uint) uint {
	categories, err := s.store.ListCategories(userID)
	require.NoError(s.T(), err)
	for _, c := range categories {
		if c.CategoryType.Name == "Income" {
			return c.ID
		}
	}
	s.T().Fatal("Income category not seeded")
	return 0
}

func (s *StoreSuite) TestSummaryEmpty() {
	alice := s.mustRegister("alice")

	summary, err := s.store.MonthlySummary(alice.ID, march)
	require.NoError(s.T(), err)
	assert.NotNil(s.T(), summary.PerCategory)
	assert.Empty(s.T(), summary.PerCategory)
	assert.True(s.T(), summary.TotalIncome.IsZero())
	assert.True(s.T(), summary.TotalExpense.IsZero())
	assert.True(s.T(), summary.Savings.IsZero())
}

func (s *StoreSuite) TestSummarySingleExpense() {
	alice := s.mustRegister("alice")
	misc := s.miscCategory(alice.ID)

	s.addEntry(alice.ID, misc.ID, "42.50", march)

	summary, err := s.store.MonthlySummary(alice.ID, march)
	require.NoError(s.T(), err)
	assert.True(s.T(), summary.TotalExpense.Equal(amount("42.50")), "expense = %s", summary.TotalExpense)
	assert.True(s.T(), summary.TotalIncome.IsZero())
	assert.True(s.T(), summary.Savings.Equal(amount("-42.50")), "savings = %s", summary.Savings)

	require.Len(s.T(), summary.PerCategory, 1)
	row := summary.PerCategory[0]
	assert.Equal(s.T(), "Misc", row.CategoryName)
	assert.Equal(s.T(), "Chequing", row.AccountName)
	assert.True(s.T(), row.BudgetAmount.Equal(amount("100")))
	assert.True(s.T(), row.SpentAmount.Equal(amount("42.50")))
}

func (s *StoreSuite) TestSummaryMonthBoundaries() {
	alice := s.mustRegister("alice")
	misc := s.miscCategory(alice.ID)

	lastInstant := time.Date(2025, time.March, 31, 23, 59, 59, 999000000, time.UTC)
	nextMonth := time.Date(2025, time.April, 1, 0, 0, 0, 0, time.UTC)
	prevMonth := time.Date(2025, time.February, 28, 10, 0, 0, 0, time.UTC)

	s.addEntry(alice.ID, misc.ID, "10.00", lastInstant)
	s.addEntry(alice.ID, misc.ID, "20.00", nextMonth)
	s.addEntry(alice.ID, misc.ID, "40.00", prevMonth)

	summary, err := s.store.MonthlySummary(alice.ID, march)
	require.NoError(s.T(), err)
	// Only the 23:59:59.999 entry falls inside [Mar 1, Apr 1).
	assert.True(s.T(), summary.TotalExpense.Equal(amount("10.00")), "expense = %s", summary.TotalExpense)
}

func (s *StoreSuite) TestSummaryScopedToUser() {
	alice := s.mustRegister("alice")
	bob := s.mustRegister("bob")

	s.addEntry(bob.ID, s.miscCategory(bob.ID).ID, "99.99", march)
	s.addEntry(alice.ID, s.miscCategory(alice.ID).ID, "1.00", march)

	summary, err := s.store.MonthlySummary(alice.ID, march)
	require.NoError(s.T(), err)
	assert.True(s.T(), summary.TotalExpense.Equal(amount("1.00")), "expense = %s", summary.TotalExpense)
	require.Len(s.T(), summary.PerCategory, 1)
}

func (s *StoreSuite) TestSummarySavingsIsExact() {
	alice := s.mustRegister("alice")
	misc := s.miscCategory(alice.ID)
	income := s.incomeCategory(alice.ID)

	// Classic float traps: 0.10 repeated must sum without drift.
	var wantExpense, wantIncome decimal.Decimal
	for i := 0; i < 30; i++ {
		s.addEntry(alice.ID, misc.ID, "0.10", march.Add(time.Duration(i)*time.Hour))
		wantExpense = wantExpense.Add(amount("0.10"))
	}
	for _, amt := range []string{"1234.56", "0.01", "765.43"} {
		s.addEntry(alice.ID, income, amt, march)
		wantIncome = wantIncome.Add(amount(amt))
	}

	summary, err := s.store.MonthlySummary(alice.ID, march)
	require.NoError(s.T(), err)
	assert.True(s.T(), summary.TotalExpense.Equal(wantExpense),
		fmt.Sprintf("expense = %s, want %s", summary.TotalExpense, wantExpense))
	assert.True(s.T(), summary.TotalIncome.Equal(wantIncome),
		fmt.Sprintf("income = %s, want %s", summary.TotalIncome, wantIncome))
	assert.True(s.T(), summary.Savings.Equal(wantIncome.Sub(wantExpense)),
		fmt.Sprintf("savings = %s", summary.Savings))

	// The grouped per-category figure must carry no drift either.
	require.Len(s.T(), summary.PerCategory, 1)
	assert.True(s.T(), summary.PerCategory[0].SpentAmount.Equal(wantExpense),
		fmt.Sprintf("spent = %s, want %s", summary.PerCategory[0].SpentAmount, wantExpense))
}

func (s *StoreSuite) TestSummaryGroupsPerCategory() {
	alice := s.mustRegister("alice")
	misc := s.miscCategory(alice.ID)
	chequing := s.chequing(alice.ID)

	types, err := s.store.ListCategoryTypes()
	require.NoError(s.T(), err)
	var expenseTypeID uint
	for _, t := range types {
		if t.Name == "Expense" {
			expenseTypeID = t.ID
		}
	}
	groceries, err := s.store.CreateCategory(alice.ID, CategoryParams{
		Name:           "Groceries",
		CategoryTypeID: expenseTypeID,
		AccountID:      chequing.ID,
		BudgetAmount:   amount("300.00"),
	})
	require.NoError(s.T(), err)

	s.addEntry(alice.ID, misc.ID, "12.00", march)
	s.addEntry(alice.ID, misc.ID, "8.00", march)
	s.addEntry(alice.ID, groceries.ID, "55.25", march)

	summary, err := s.store.MonthlySummary(alice.ID, march)
	require.NoError(s.T(), err)
	require.Len(s.T(), summary.PerCategory, 2)

	// Ordered by category name.
	assert.Equal(s.T(), "Groceries", summary.PerCategory[0].CategoryName)
	assert.True(s.T(), summary.PerCategory[0].SpentAmount.Equal(amount("55.25")))
	assert.Equal(s.T(), "Misc", summary.PerCategory[1].CategoryName)
	assert.True(s.T(), summary.PerCategory[1].SpentAmount.Equal(amount("20.00")))
	assert.True(s.T(), summary.TotalExpense.Equal(amount("75.25")))
}

func (s *StoreSuite) TestMonthBounds() {
	lower, upper := MonthBounds(time.Date(2025, time.December, 31, 18, 30, 0, 0, time.UTC))
	assert.Equal(s.T(), time.Date(2025, time.December, 1, 0, 0, 0, 0, time.UTC), lower)
	assert.Equal(s.T(), time.Date(2026, time.January, 1, 0, 0, 0, 0, time.UTC), upper)
}
