package models

import (
	"time"

	"gorm.io/gorm"
)

// Loan amount bounds in birr.
const (
	MinLoanAmount = 100000
	MaxLoanAmount = 10000000
)

// Customer is the merged customer/application entity. One row carries both
// the applicant profile and the position of the application in the review
// workflow via ApplicationStatus.
type Customer struct {
	gorm.Model
	CustomerNumber             string  `gorm:"uniqueIndex;not null" json:"customerNumber"`
	ApplicationReferenceNumber *string `gorm:"uniqueIndex" json:"applicationReferenceNumber"`

	// Personal details
	FirstName  string `gorm:"not null" json:"firstName"`
	MiddleName string `json:"middleName"`
	LastName   string `gorm:"not null" json:"lastName"`
	Email      string `gorm:"not null" json:"email"`
	Phone      string `gorm:"not null" json:"phone"`
	Address    string `json:"address"`
	City       string `json:"city"`

	// Business details
	BusinessName        string     `json:"businessName"`
	BusinessDescription string     `json:"businessDescription"`
	DateOfEstablishment *time.Time `json:"dateOfEstablishment"`
	MonthlyIncome       float64    `json:"monthlyIncome"`
	AnnualRevenue       float64    `json:"annualRevenue"`

	// Document pointers; files live in external storage, only the public
	// URLs are persisted here.
	IDDocumentURL         string `json:"idDocumentUrl"`
	BusinessLicenseURL    string `json:"businessLicenseUrl"`
	FinancialStatementURL string `json:"financialStatementUrl"`

	// Loan terms
	LoanType      string  `gorm:"not null" json:"loanType"`
	LoanAmount    float64 `gorm:"not null" json:"loanAmount"`
	LoanPeriod    int     `json:"loanPeriod"` // months
	LoanPurpose   string  `json:"loanPurpose"`
	RepaymentMode string  `json:"repaymentMode"`

	// Workflow position. DecisionReason mirrors the reason of the most
	// recent Decision row for quick display.
	ApplicationStatus string `gorm:"not null;default:'PENDING';index" json:"applicationStatus"`
	DecisionReason    string `json:"decisionReason"`

	// Bumped on every status transition; conditional updates against it
	// turn concurrent reviewer writes into conflicts instead of silent
	// overwrites.
	Version int `gorm:"not null;default:1" json:"version"`

	RelationshipManagerID uint `gorm:"index" json:"relationshipManagerId"`
}

// FullName returns the applicant's display name.
func (c *Customer) FullName() string {
	if c.MiddleName == "" {
		return c.FirstName + " " + c.LastName
	}
	return c.FirstName + " " + c.MiddleName + " " + c.LastName
}
