package source

import (
	"context"
	_ "embed"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/wonny/c360/internal/contracts"
	"github.com/wonny/c360/pkg/database"
	"github.com/wonny/c360/pkg/logger"
)

//go:embed schema.sql
var schemaSQL string

const customerColumns = `
	client_id, name, age, location, nationality, occupation, gender,
	joined_bank, banking_contact, relationship_code,
	total_fees, total_loan, total_deposit, estimated_income, engagement_days,
	risk_weighting, properties_owned, superannuation_savings,
	bank_loans, bank_deposits, checking_accounts, saving_accounts,
	foreign_currency_account, business_lending, credit_card_balance, credit_card_count,
	loyalty, fee_structure`

const selectCustomersSQL = `SELECT` + customerColumns + `
	FROM c360.customers
	ORDER BY client_id`

const upsertCustomerSQL = `
	INSERT INTO c360.customers (` + customerColumns + `
	) VALUES (
		$1, $2, $3, $4, $5, $6, $7, $8, $9, $10,
		$11, $12, $13, $14, $15, $16, $17, $18,
		$19, $20, $21, $22, $23, $24, $25, $26,
		$27, $28
	)
	ON CONFLICT (client_id) DO UPDATE SET
		name = EXCLUDED.name,
		age = EXCLUDED.age,
		location = EXCLUDED.location,
		nationality = EXCLUDED.nationality,
		occupation = EXCLUDED.occupation,
		gender = EXCLUDED.gender,
		joined_bank = EXCLUDED.joined_bank,
		banking_contact = EXCLUDED.banking_contact,
		relationship_code = EXCLUDED.relationship_code,
		total_fees = EXCLUDED.total_fees,
		total_loan = EXCLUDED.total_loan,
		total_deposit = EXCLUDED.total_deposit,
		estimated_income = EXCLUDED.estimated_income,
		engagement_days = EXCLUDED.engagement_days,
		risk_weighting = EXCLUDED.risk_weighting,
		properties_owned = EXCLUDED.properties_owned,
		superannuation_savings = EXCLUDED.superannuation_savings,
		bank_loans = EXCLUDED.bank_loans,
		bank_deposits = EXCLUDED.bank_deposits,
		checking_accounts = EXCLUDED.checking_accounts,
		saving_accounts = EXCLUDED.saving_accounts,
		foreign_currency_account = EXCLUDED.foreign_currency_account,
		business_lending = EXCLUDED.business_lending,
		credit_card_balance = EXCLUDED.credit_card_balance,
		credit_card_count = EXCLUDED.credit_card_count,
		loyalty = EXCLUDED.loyalty,
		fee_structure = EXCLUDED.fee_structure,
		updated_at = NOW()`

// ErrEmptyImport is returned by Import for an empty customer set
var ErrEmptyImport = errors.New("no customers to import")

const pruneCustomersSQL = `DELETE FROM c360.customers WHERE NOT (client_id = ANY($1))`

// PostgresSource reads and writes the snapshot in c360.customers
// ⭐ SSOT: customers 테이블 저장/조회는 여기서만
type PostgresSource struct {
	db     database.Querier
	logger *logger.Logger
}

// NewPostgresSource creates a PostgreSQL source
func NewPostgresSource(db database.Querier, log *logger.Logger) *PostgresSource {
	return &PostgresSource{db: db, logger: log}
}

// Name implements contracts.RecordSource
func (s *PostgresSource) Name() string {
	return "postgres:c360.customers"
}

// EnsureSchema creates the schema and table if missing
func (s *PostgresSource) EnsureSchema(ctx context.Context) error {
	if _, err := s.db.Exec(ctx, schemaSQL); err != nil {
		return fmt.Errorf("failed to ensure schema: %w", err)
	}
	return nil
}

// Load implements contracts.RecordSource
func (s *PostgresSource) Load(ctx context.Context) ([]contracts.Customer, error) {
	rows, err := s.db.Query(ctx, selectCustomersSQL)
	if err != nil {
		return nil, fmt.Errorf("failed to query customers: %w", err)
	}

	customers, err := pgx.CollectRows(rows, scanCustomer)
	if err != nil {
		return nil, fmt.Errorf("failed to scan customers: %w", err)
	}

	logStats(s.logger, s.Name(), Stats{Rows: len(customers), Loaded: len(customers)})
	return customers, nil
}

func scanCustomer(row pgx.CollectableRow) (contracts.Customer, error) {
	var c contracts.Customer
	var loyalty, fee string

	err := row.Scan(
		&c.ClientID, &c.Name, &c.Age, &c.Location, &c.Nationality, &c.Occupation, &c.Gender,
		&c.JoinedBank, &c.BankingContact, &c.RelationshipCode,
		&c.TotalFees, &c.TotalLoan, &c.TotalDeposit, &c.EstimatedIncome, &c.EngagementDays,
		&c.RiskWeighting, &c.PropertiesOwned, &c.SuperannuationSavings,
		&c.BankLoans, &c.BankDeposits, &c.CheckingAccounts, &c.SavingAccounts,
		&c.ForeignCurrencyAccount, &c.BusinessLending, &c.CreditCardBalance, &c.CreditCardCount,
		&loyalty, &fee,
	)
	if err != nil {
		return c, err
	}

	c.Loyalty = contracts.ParseLoyaltyTier(loyalty)
	c.FeeStructure = contracts.ParseFeeStructure(fee)
	return c, nil
}

// Import replaces the stored snapshot with customers in one transaction:
// every customer is upserted and rows missing from the new set are removed.
// An empty set is refused rather than clearing the table.
func (s *PostgresSource) Import(ctx context.Context, customers []contracts.Customer) (int, error) {
	if len(customers) == 0 {
		return 0, ErrEmptyImport
	}

	tx, err := s.db.Begin(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	ids := make([]string, 0, len(customers))
	batch := &pgx.Batch{}
	for _, c := range customers {
		batch.Queue(upsertCustomerSQL, customerArgs(c)...)
		ids = append(ids, c.ClientID)
	}

	if err := upsertBatch(ctx, tx, batch, ids); err != nil {
		return 0, err
	}

	tag, err := tx.Exec(ctx, pruneCustomersSQL, ids)
	if err != nil {
		return 0, fmt.Errorf("failed to prune customers: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return 0, fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.logger.WithFields(map[string]interface{}{
		"upserted": len(customers),
		"pruned":   tag.RowsAffected(),
	}).Info("Customers imported")

	return len(customers), nil
}

// upsertBatch sends every queued upsert in one round trip. All results are
// read before the batch is closed so the prune runs on a free connection.
func upsertBatch(ctx context.Context, tx pgx.Tx, batch *pgx.Batch, ids []string) error {
	br := tx.SendBatch(ctx, batch)
	defer br.Close()

	for _, id := range ids {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("failed to upsert %s: %w", id, err)
		}
	}

	if err := br.Close(); err != nil {
		return fmt.Errorf("failed to close upsert batch: %w", err)
	}
	return nil
}

func customerArgs(c contracts.Customer) []any {
	return []any{
		c.ClientID, c.Name, c.Age, c.Location, c.Nationality, c.Occupation, c.Gender,
		c.JoinedBank, c.BankingContact, c.RelationshipCode,
		c.TotalFees, c.TotalLoan, c.TotalDeposit, c.EstimatedIncome, c.EngagementDays,
		c.RiskWeighting, c.PropertiesOwned, c.SuperannuationSavings,
		c.BankLoans, c.BankDeposits, c.CheckingAccounts, c.SavingAccounts,
		c.ForeignCurrencyAccount, c.BusinessLending, c.CreditCardBalance, c.CreditCardCount,
		string(c.Loyalty), string(c.FeeStructure),
	}
}
