package contracts

// Customer is one customer's raw snapshot as supplied by a RecordSource
// ⭐ SSOT: Record Source → Selection/KPI 원본 데이터 전달
//
// Numeric fields that are absent upstream are carried as 0.
type Customer struct {
	// Identity
	ClientID         string `json:"client_id"`
	Name             string `json:"name"`
	Age              int    `json:"age"`
	Location         string `json:"location"`
	Nationality      string `json:"nationality"`
	Occupation       string `json:"occupation"`
	Gender           string `json:"gender"`
	JoinedBank       string `json:"joined_bank"`
	BankingContact   string `json:"banking_contact"`   // advisor
	RelationshipCode string `json:"relationship_code"` // "1".."4", see RelationshipName

	// Financial
	TotalFees             float64 `json:"total_fees"`
	TotalLoan             float64 `json:"total_loan"`
	TotalDeposit          float64 `json:"total_deposit"`
	EstimatedIncome       float64 `json:"estimated_income"`
	EngagementDays        float64 `json:"engagement_days"`
	RiskWeighting         float64 `json:"risk_weighting"` // 0 ~ 100
	PropertiesOwned       float64 `json:"properties_owned"`
	SuperannuationSavings float64 `json:"superannuation_savings"`

	// Product balances
	BankLoans              float64 `json:"bank_loans"`
	BankDeposits           float64 `json:"bank_deposits"`
	CheckingAccounts       float64 `json:"checking_accounts"`
	SavingAccounts         float64 `json:"saving_accounts"`
	ForeignCurrencyAccount float64 `json:"foreign_currency_account"`
	BusinessLending        float64 `json:"business_lending"`
	CreditCardBalance      float64 `json:"credit_card_balance"`
	CreditCardCount        int     `json:"credit_card_count"`

	// Classification
	Loyalty      LoyaltyTier  `json:"loyalty"`
	FeeStructure FeeStructure `json:"fee_structure"`
}

// RelationshipName maps the relationship code to the label shown in the dashboard
func RelationshipName(code string) string {
	switch code {
	case "1":
		return "Retail"
	case "2":
		return "Institutional"
	case "3":
		return "Private Bank"
	case "4":
		return "Commercial"
	default:
		return "Unknown"
	}
}

// Snapshot is an ordered set of customers loaded from one source
type Snapshot struct {
	Customers []Customer
	Source    string
}

// Len returns the number of customers in the snapshot
func (s *Snapshot) Len() int {
	return len(s.Customers)
}

// Find returns the customer with the given client ID
func (s *Snapshot) Find(clientID string) (Customer, bool) {
	for _, c := range s.Customers {
		if c.ClientID == clientID {
			return c, true
		}
	}
	return Customer{}, false
}
