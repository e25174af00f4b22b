package tx

import "fmt"

// Result represents a transaction result code
type Result int

// Transaction result codes, organized by category: tes, tec, tef, tel, tem.
// A tec result means the transaction was well formed but could not be
// applied; no state changes are committed for any non-tes result.
const (
	// tesSUCCESS (0)
	TesSUCCESS Result = 0

	// tec codes (100-199): rejected while applying
	TecUNFUNDED_PAYMENT   Result = 104
	TecNO_DST             Result = 124
	TecNO_PERMISSION      Result = 139
	TecNO_ENTRY           Result = 140
	TecINTERNAL           Result = 144
	TecDUPLICATE          Result = 149
	TecINSUFFICIENT_FUNDS Result = 159
	TecINVALID_STATE      Result = 180
	TecTRANSFER_REJECTED  Result = 181

	// tef codes (-199 to -100): engine failure, nothing applied
	TefFAILURE    Result = -199
	TefBAD_AUTH   Result = -196
	TefBAD_LEDGER Result = -195
	TefINTERNAL   Result = -192
	TefPAST_SEQ   Result = -190

	// tel codes (-399 to -300): local error, never reached the engine
	TelLOCAL_ERROR Result = -399

	// tem codes (-299 to -200): malformed transaction
	TemMALFORMED       Result = -299
	TemBAD_AMOUNT      Result = -298
	TemBAD_SEQUENCE    Result = -283
	TemBAD_SRC_ACCOUNT Result = -281
	TemDST_IS_SRC      Result = -279
	TemDST_NEEDED      Result = -278
	TemINVALID         Result = -277
	TemUNKNOWN         Result = -264

	// ter codes (-99 to -1): retry later
	TerPRE_SEQ Result = -92
)

var resultNames = map[Result]string{
	TesSUCCESS:            "tesSUCCESS",
	TecUNFUNDED_PAYMENT:   "tecUNFUNDED_PAYMENT",
	TecNO_DST:             "tecNO_DST",
	TecNO_PERMISSION:      "tecNO_PERMISSION",
	TecNO_ENTRY:           "tecNO_ENTRY",
	TecINTERNAL:           "tecINTERNAL",
	TecDUPLICATE:          "tecDUPLICATE",
	TecINSUFFICIENT_FUNDS: "tecINSUFFICIENT_FUNDS",
	TecINVALID_STATE:      "tecINVALID_STATE",
	TecTRANSFER_REJECTED:  "tecTRANSFER_REJECTED",
	TefFAILURE:            "tefFAILURE",
	TefBAD_AUTH:           "tefBAD_AUTH",
	TefBAD_LEDGER:         "tefBAD_LEDGER",
	TefINTERNAL:           "tefINTERNAL",
	TefPAST_SEQ:           "tefPAST_SEQ",
	TelLOCAL_ERROR:        "telLOCAL_ERROR",
	TemMALFORMED:          "temMALFORMED",
	TemBAD_AMOUNT:         "temBAD_AMOUNT",
	TemBAD_SEQUENCE:       "temBAD_SEQUENCE",
	TemBAD_SRC_ACCOUNT:    "temBAD_SRC_ACCOUNT",
	TemDST_IS_SRC:         "temDST_IS_SRC",
	TemDST_NEEDED:         "temDST_NEEDED",
	TemINVALID:            "temINVALID",
	TemUNKNOWN:            "temUNKNOWN",
	TerPRE_SEQ:            "terPRE_SEQ",
}

var resultMessages = map[Result]string{
	TesSUCCESS:            "The transaction was applied.",
	TecUNFUNDED_PAYMENT:   "Insufficient balance to send.",
	TecNO_PERMISSION:      "No permission to perform requested operation.",
	TecNO_ENTRY:           "No matching entry found.",
	TecDUPLICATE:          "Ledger object already exists.",
	TecINSUFFICIENT_FUNDS: "Held and attached funds do not cover the purchase price.",
	TecINVALID_STATE:      "The sale has already been completed.",
	TecTRANSFER_REJECTED:  "The asset registry refused the ownership transfer.",
	TefBAD_AUTH:           "Contract accounts cannot submit transactions.",
	TefPAST_SEQ:           "Sequence number has already passed.",
	TerPRE_SEQ:            "Missing/inapplicable prior transaction.",
	TemBAD_AMOUNT:         "Amount is missing or out of range.",
	TemDST_IS_SRC:         "Destination may not be source.",
	TemDST_NEEDED:         "Destination is required.",
	TemMALFORMED:          "Malformed transaction.",
	TemUNKNOWN:            "The transaction type is not known.",
}

// ResultFromName parses a result code name such as "tecNO_ENTRY".
func ResultFromName(name string) (Result, bool) {
	for r, n := range resultNames {
		if n == name {
			return r, true
		}
	}
	return 0, false
}

// String returns the result code name, e.g. "tesSUCCESS".
func (r Result) String() string {
	if name, ok := resultNames[r]; ok {
		return name
	}
	return fmt.Sprintf("Unknown(%d)", r)
}

// IsSuccess returns true if the result indicates success
func (r Result) IsSuccess() bool {
	return r == TesSUCCESS
}

// IsTec returns true if this is a tec code
func (r Result) IsTec() bool {
	return r >= 100 && r < 200
}

// IsTef returns true if this is a tef (failure) code
func (r Result) IsTef() bool {
	return r >= -199 && r <= -100
}

// IsTel returns true if this is a tel (local error) code
func (r Result) IsTel() bool {
	return r >= -399 && r <= -300
}

// IsTem returns true if this is a tem (malformed) code
func (r Result) IsTem() bool {
	return r >= -299 && r <= -200
}

// IsTer returns true if this is a ter (retry) code
func (r Result) IsTer() bool {
	return r >= -99 && r <= -1
}

// Message returns a human-readable message for the result
func (r Result) Message() string {
	if msg, ok := resultMessages[r]; ok {
		return msg
	}
	return r.String()
}
