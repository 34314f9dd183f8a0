package source

import (
	"math"
	"strconv"
	"strings"

	"github.com/wonny/c360/internal/contracts"
)

// number is a lenient numeric cell: empty, "NaN", "null", "-" and "n/a"
// decode as 0; thousands separators, currency signs and spaces are stripped.
type number float64

func (n *number) UnmarshalText(text []byte) error {
	s := strings.TrimSpace(string(text))
	switch strings.ToLower(s) {
	case "", "nan", "null", "none", "-", "n/a", "na":
		*n = 0
		return nil
	}

	s = strings.NewReplacer(",", "", "$", "", " ", "").Replace(s)
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return err
	}
	if math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}

	*n = number(v)
	return nil
}

// record mirrors one row of the banking clients dataset.
// Column names follow the published file; unknown columns are ignored and
// missing columns decode as zero values.
type record struct {
	ClientID    string `csv:"Client ID"`
	Name        string `csv:"Name"`
	Age         number `csv:"Age"`
	LocationID  string `csv:"Location ID"`
	Location    string `csv:"Location"`
	JoinedBank  string `csv:"Joined Bank"`
	Contact     string `csv:"Banking Contact"`
	Nationality string `csv:"Nationality"`
	Occupation  string `csv:"Occupation"`
	Gender      string `csv:"Gender"`
	GenderID    string `csv:"GenderId"`
	BRID        string `csv:"BRId"`

	FeeStructure string `csv:"Fee Structure"`
	Loyalty      string `csv:"Loyalty Classification"`

	EstimatedIncome       number `csv:"Estimated Income"`
	SuperannuationSavings number `csv:"Superannuation Savings"`
	CreditCards           number `csv:"Amount of Credit Cards"`
	CreditCardBalance     number `csv:"Credit Card Balance"`
	BankLoans             number `csv:"Bank Loans"`
	BankDeposits          number `csv:"Bank Deposits"`
	CheckingAccounts      number `csv:"Checking Accounts"`
	SavingAccounts        number `csv:"Saving Accounts"`
	ForeignCurrency       number `csv:"Foreign Currency Account"`
	BusinessLending       number `csv:"Business Lending"`
	PropertiesOwned       number `csv:"Properties Owned"`
	RiskWeighting         number `csv:"Risk Weighting"`
	TotalLoan             number `csv:"Total Loan"`
	TotalDeposit          number `csv:"Total Deposit"`
	TotalFees             number `csv:"Total Fees"`
	EngagementDays        number `csv:"Engagement Days"`
}

// genderByID decodes the dataset's GenderId column
var genderByID = map[string]string{
	"1": "Male",
	"2": "Female",
}

func (r record) customer() contracts.Customer {
	gender := strings.TrimSpace(r.Gender)
	if gender == "" {
		gender = genderByID[strings.TrimSpace(r.GenderID)]
	}

	location := strings.TrimSpace(r.Location)
	if location == "" {
		location = strings.TrimSpace(r.LocationID)
	}

	return contracts.Customer{
		ClientID:         strings.TrimSpace(r.ClientID),
		Name:             strings.TrimSpace(r.Name),
		Age:              int(r.Age),
		Location:         location,
		Nationality:      strings.TrimSpace(r.Nationality),
		Occupation:       strings.TrimSpace(r.Occupation),
		Gender:           gender,
		JoinedBank:       strings.TrimSpace(r.JoinedBank),
		BankingContact:   strings.TrimSpace(r.Contact),
		RelationshipCode: strings.TrimSpace(r.BRID),

		TotalFees:             float64(r.TotalFees),
		TotalLoan:             float64(r.TotalLoan),
		TotalDeposit:          float64(r.TotalDeposit),
		EstimatedIncome:       float64(r.EstimatedIncome),
		EngagementDays:        float64(r.EngagementDays),
		RiskWeighting:         float64(r.RiskWeighting),
		PropertiesOwned:       float64(r.PropertiesOwned),
		SuperannuationSavings: float64(r.SuperannuationSavings),

		BankLoans:              float64(r.BankLoans),
		BankDeposits:           float64(r.BankDeposits),
		CheckingAccounts:       float64(r.CheckingAccounts),
		SavingAccounts:         float64(r.SavingAccounts),
		ForeignCurrencyAccount: float64(r.ForeignCurrency),
		BusinessLending:        float64(r.BusinessLending),
		CreditCardBalance:      float64(r.CreditCardBalance),
		CreditCardCount:        int(r.CreditCards),

		Loyalty:      contracts.ParseLoyaltyTier(r.Loyalty),
		FeeStructure: contracts.ParseFeeStructure(r.FeeStructure),
	}
}
