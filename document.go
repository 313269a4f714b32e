package xbrlfacts

import (
	"context"
	"time"
)

// DocTypeAnnualReport is the EDINET document type code of annual securities reports.
const DocTypeAnnualReport = "120"

// DocumentInfo is the metadata EDINET publishes for a submitted document.
type DocumentInfo struct {
	SeqNumber            int     `json:"seqNumber"`
	DocID                string  `json:"docID"`
	EdinetCode           *string `json:"edinetCode"`
	SecCode              *string `json:"secCode"`
	JCN                  *string `json:"JCN"`
	FilerName            *string `json:"filerName"`
	FundCode             *string `json:"fundCode"`
	OrdinanceCode        *string `json:"ordinanceCode"`
	FormCode             *string `json:"formCode"`
	DocTypeCode          *string `json:"docTypeCode"`
	PeriodStart          *string `json:"periodStart"`
	PeriodEnd            *string `json:"periodEnd"`
	SubmitDateTime       *string `json:"submitDateTime"`
	DocDescription       *string `json:"docDescription"`
	IssuerEdinetCode     *string `json:"issuerEdinetCode"`
	SubjectEdinetCode    *string `json:"subjectEdinetCode"`
	SubsidiaryEdinetCode *string `json:"subsidiaryEdinetCode"`
	CurrentReportReason  *string `json:"currentReportReason"`
	ParentDocID          *string `json:"parentDocID"`
	OpeDateTime          *string `json:"opeDateTime"`
	WithdrawalStatus     *string `json:"withdrawalStatus"`
	DocInfoEditStatus    *string `json:"docInfoEditStatus"`
	DisclosureStatus     *string `json:"disclosureStatus"`
	XBRLFlag             *string `json:"xbrlFlag"`
	PDFFlag              *string `json:"pdfFlag"`
	AttachDocFlag        *string `json:"attachDocFlag"`
	EnglishDocFlag       *string `json:"englishDocFlag"`
	CSVFlag              *string `json:"csvFlag"`
	LegalStatus          *string `json:"legalStatus"`
}

// IsAnnualReport returns true for annual securities reports that are not
// fund reports.
func (d *DocumentInfo) IsAnnualReport() bool {
	if d.DocTypeCode == nil || *d.DocTypeCode != DocTypeAnnualReport {
		return false
	}
	return d.FundCode == nil || *d.FundCode == ""
}

// HasXBRL returns true if EDINET reports an XBRL archive for the document.
func (d *DocumentInfo) HasXBRL() bool {
	return d.XBRLFlag != nil && *d.XBRLFlag == "1"
}

// FilingSource retrieves document lists and filing archives from EDINET.
type FilingSource interface {
	// ListDocuments returns the documents submitted on the given date.
	ListDocuments(ctx context.Context, date time.Time) ([]*DocumentInfo, error)

	// FetchArchive returns the zipped XBRL archive of a document.
	// Returns ENOTFOUND if the document does not exist.
	FetchArchive(ctx context.Context, docID string) ([]byte, error)
}
