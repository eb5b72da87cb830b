package store

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// CategorySpend is one row of the home view: a category's budget against
// what was spent in it this month.
type CategorySpend struct {
	CategoryName string          `json:"category_name"`
	AccountName  string          `json:"account_name"`
	BudgetAmount decimal.Decimal `json:"budget_amount"`
	SpentAmount  decimal.Decimal `json:"spent_amount"`
}

// MonthSummary aggregates a user's entries for one calendar month.
// Savings is income minus expense and can be negative.
type MonthSummary struct {
	PerCategory  []CategorySpend `json:"per_category"`
	TotalIncome  decimal.Decimal `json:"total_income"`
	TotalExpense decimal.Decimal `json:"total_expense"`
	Savings      decimal.Decimal `json:"savings"`
}

// MonthBounds returns the half-open window [first of month, first of next
// month) around the given instant.
func MonthBounds(now time.Time) (time.Time, time.Time) {
	lower := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	return lower, lower.AddDate(0, 1, 0)
}

// entryRow is one matched entry with its category context, as selected by
// the summary join.
type entryRow struct {
	CategoryID   uint
	CategoryName string
	AccountName  string
	BudgetAmount decimal.Decimal
	Amount       decimal.Decimal
}

// MonthlySummary computes the home view figures for the month containing
// now. Read-only; a user with no data gets zero totals and an empty slice.
//
// The matched rows are summed here with decimals instead of in SQL:
// sqlite gives numeric columns NUMERIC affinity and runs SUM in binary
// floating point, which loses cents.
func (s *Store) MonthlySummary(userID uint, now time.Time) (*MonthSummary, error) {
	lower, upper := MonthBounds(now)

	expenseRows, err := s.entryRowsOfType(userID, "Expense", lower, upper)
	if err != nil {
		return nil, err
	}
	incomeRows, err := s.entryRowsOfType(userID, "Income", lower, upper)
	if err != nil {
		return nil, err
	}

	totalExpense := sumAmounts(expenseRows)
	totalIncome := sumAmounts(incomeRows)

	return &MonthSummary{
		PerCategory:  groupByCategory(expenseRows),
		TotalIncome:  totalIncome,
		TotalExpense: totalExpense,
		Savings:      totalIncome.Sub(totalExpense),
	}, nil
}

// entriesOfType builds the Entry->Category->Account->CategoryType join
// filtered to one user, one category type and the date window.
func (s *Store) entriesOfType(userID uint, typeName string, lower, upper time.Time) *gorm.DB {
	return s.db.Table("entries").
		Joins("JOIN categories ON categories.id = entries.category_id").
		Joins("JOIN accounts ON accounts.id = categories.account_id").
		Joins("JOIN category_types ON category_types.id = categories.category_type_id").
		Where("entries.user_id = ?", userID).
		Where("category_types.name = ?", typeName).
		Where("entries.effective_date >= ? AND entries.effective_date < ?", lower, upper)
}

func (s *Store) entryRowsOfType(userID uint, typeName string, lower, upper time.Time) ([]entryRow, error) {
	rows := []entryRow{}
	err := s.entriesOfType(userID, typeName, lower, upper).
		Select("entries.amount AS amount, categories.id AS category_id, categories.name AS category_name, accounts.name AS account_name, categories.budget_amount AS budget_amount").
		Order("categories.name, entries.id").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	return rows, nil
}

func sumAmounts(rows []entryRow) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.Amount)
	}
	return total
}

// groupByCategory folds the per-entry rows into one CategorySpend per
// category. Rows arrive ordered by category name, so the output keeps that
// order.
func groupByCategory(rows []entryRow) []CategorySpend {
	perCategory := []CategorySpend{}
	index := map[uint]int{}
	for _, r := range rows {
		if i, ok := index[r.CategoryID]; ok {
			perCategory[i].SpentAmount = perCategory[i].SpentAmount.Add(r.Amount)
			continue
		}
		index[r.CategoryID] = len(perCategory)
		perCategory = append(perCategory, CategorySpend{
			CategoryName: r.CategoryName,
			AccountName:  r.AccountName,
			BudgetAmount: r.BudgetAmount,
			SpentAmount:  r.Amount,
		})
	}
	return perCategory
}
