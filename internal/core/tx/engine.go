package tx

import (
	"context"
	"encoding/binary"
	"encoding/json"
	"strings"
	"sync"
	"time"

	"github.com/LeJamon/goNFTize/internal/core/amount"
	"github.com/LeJamon/goNFTize/internal/core/ledger"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/crypto"
	"go.uber.org/zap"
)

// Clock supplies the time stamped on applied transactions.
type Clock interface {
	Now() time.Time
}

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now().UTC() }

// Observer is notified after every submission, whether or not it applied.
// Observers run while the engine lock is held, so they see transactions in
// the order they were applied.
type Observer interface {
	TransactionApplied(ctx context.Context, t Transaction, res ApplyResult)
}

// EngineConfig holds configuration for the transaction engine
type EngineConfig struct {
	// Logger receives engine diagnostics. Defaults to a no-op logger.
	Logger *zap.Logger

	// Clock defaults to the system clock in UTC.
	Clock Clock

	// Observers are called in order after each submission.
	Observers []Observer
}

// ApplyResult contains the result of applying a transaction
type ApplyResult struct {
	// Result is the transaction result code
	Result Result

	// Applied indicates if the transaction changed the ledger
	Applied bool

	// Hash identifies the transaction. Zero when rejected before applying.
	Hash [32]byte

	// Sequence is the account sequence the transaction consumed or would
	// have consumed
	Sequence uint64

	CloseTime time.Time

	// Metadata contains what the transaction did
	Metadata *Metadata

	// Message is a human-readable result message
	Message string
}

// Engine applies transactions to a ledger one at a time. Every transaction
// runs in its own sandbox which is committed only on tesSUCCESS, so a
// rejected transaction leaves no trace.
type Engine struct {
	mu     sync.Mutex
	ledger *ledger.Ledger
	config EngineConfig
	log    *zap.Logger
}

// NewEngine creates an engine over l
func NewEngine(l *ledger.Ledger, config EngineConfig) *Engine {
	if config.Logger == nil {
		config.Logger = zap.NewNop()
	}
	if config.Clock == nil {
		config.Clock = systemClock{}
	}
	return &Engine{
		ledger: l,
		config: config,
		log:    config.Logger.Named("engine"),
	}
}

// Ledger returns the committed ledger the engine writes to
func (e *Engine) Ledger() *ledger.Ledger {
	return e.ledger
}

// AddObserver registers an observer for subsequent submissions
func (e *Engine) AddObserver(o Observer) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.config.Observers = append(e.config.Observers, o)
}

// Balance returns the committed balance of addr
func (e *Engine) Balance(addr common.Address) (amount.Amount, error) {
	return ledger.BalanceOf(e.ledger, addr)
}

// Sequence returns the next sequence addr must use
func (e *Engine) Sequence(addr common.Address) (uint64, error) {
	root, _, err := ledger.ReadAccount(e.ledger, addr)
	if err != nil {
		return 0, err
	}
	return root.Sequence, nil
}

// computeTransactionHash hashes the JSON form of the transaction together
// with the submitting account and the sequence it consumes.
func computeTransactionHash(t Transaction, seq uint64) ([32]byte, error) {
	body, err := json.Marshal(t)
	if err != nil {
		return [32]byte{}, err
	}
	var seqBytes [8]byte
	binary.BigEndian.PutUint64(seqBytes[:], seq)
	return crypto.Keccak256Hash(body, t.GetCommon().Account.Bytes(), seqBytes[:]), nil
}

// Submit validates and applies a transaction. It is safe for concurrent
// use; submissions are serialized.
func (e *Engine) Submit(ctx context.Context, t Transaction) ApplyResult {
	if err := ctx.Err(); err != nil {
		return ApplyResult{Result: TelLOCAL_ERROR, Message: err.Error()}
	}

	if result := e.preflight(t); !result.IsSuccess() {
		res := ApplyResult{Result: result, Message: result.Message()}
		e.log.Debug("transaction rejected in preflight",
			zap.Stringer("type", t.TxType()),
			zap.Stringer("result", result))
		e.mu.Lock()
		defer e.mu.Unlock()
		e.notify(ctx, t, res)
		return res
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	res := e.apply(ctx, t)
	e.notify(ctx, t, res)
	return res
}

// preflight performs checks that need no ledger state
func (e *Engine) preflight(t Transaction) Result {
	if _, ok := t.(Appliable); !ok {
		return TemUNKNOWN
	}
	if err := t.Validate(); err != nil {
		return parseValidationError(err)
	}
	return TesSUCCESS
}

// parseValidationError extracts a result code from a validation error
// message of the form "temBAD_AMOUNT: message". Unprefixed errors map to
// temINVALID.
func parseValidationError(err error) Result {
	name, _, _ := strings.Cut(err.Error(), ":")
	name, _, _ = strings.Cut(name, " ")
	if r, ok := ResultFromName(name); ok && r.IsTem() {
		return r
	}
	return TemINVALID
}

func (e *Engine) apply(ctx context.Context, t Transaction) ApplyResult {
	common := t.GetCommon()
	closeTime := e.config.Clock.Now()

	sb := ledger.NewSandbox(e.ledger)
	accts := ledger.NewAccounts(sb)

	seq, err := accts.Sequence(common.Account)
	if err != nil {
		sb.Discard()
		return e.internal(TefBAD_LEDGER, "read account sequence", err)
	}
	if common.Sequence != nil {
		if *common.Sequence < seq {
			sb.Discard()
			return ApplyResult{Result: TefPAST_SEQ, Sequence: seq, Message: TefPAST_SEQ.Message()}
		}
		if *common.Sequence > seq {
			sb.Discard()
			return ApplyResult{Result: TerPRE_SEQ, Sequence: seq, Message: TerPRE_SEQ.Message()}
		}
	}

	contract, err := ledger.IsContract(sb, common.Account)
	if err != nil {
		sb.Discard()
		return e.internal(TefBAD_LEDGER, "read account kind", err)
	}
	if contract {
		sb.Discard()
		return ApplyResult{Result: TefBAD_AUTH, Sequence: seq, Message: TefBAD_AUTH.Message()}
	}

	txHash, err := computeTransactionHash(t, seq)
	if err != nil {
		sb.Discard()
		return e.internal(TefINTERNAL, "compute transaction hash", err)
	}

	metadata := &Metadata{TransactionResult: TesSUCCESS}
	actx := &ApplyContext{
		View:      sb,
		Accounts:  accts,
		Account:   common.Account,
		Sequence:  seq,
		TxHash:    txHash,
		CloseTime: closeTime,
		Metadata:  metadata,
		Logger:    e.log.With(zap.Stringer("account", common.Account), zap.Uint64("seq", seq)),
	}

	result := t.(Appliable).Apply(actx)
	metadata.TransactionResult = result

	res := ApplyResult{
		Result:    result,
		Hash:      txHash,
		Sequence:  seq,
		CloseTime: closeTime,
		Metadata:  metadata,
		Message:   result.Message(),
	}

	if !result.IsSuccess() {
		sb.Discard()
		e.log.Debug("transaction not applied",
			zap.Stringer("type", t.TxType()),
			zap.Stringer("account", common.Account),
			zap.Stringer("result", result))
		return res
	}

	if _, err := accts.BumpSequence(common.Account); err != nil {
		sb.Discard()
		return e.internal(TefINTERNAL, "bump sequence", err)
	}
	metadata.Affected = sb.Changes()

	if err := sb.Apply(ctx); err != nil {
		sb.Discard()
		return e.internal(TefBAD_LEDGER, "commit transaction", err)
	}

	res.Applied = true
	e.log.Debug("transaction applied",
		zap.Stringer("type", t.TxType()),
		zap.Stringer("account", common.Account),
		zap.Uint64("sequence", seq),
		zap.Int("affected", metadata.Affected))
	return res
}

func (e *Engine) internal(result Result, what string, err error) ApplyResult {
	e.log.Error("engine failure", zap.String("step", what), zap.Error(err))
	return ApplyResult{Result: result, Message: what + ": " + err.Error()}
}

func (e *Engine) notify(ctx context.Context, t Transaction, res ApplyResult) {
	for _, o := range e.config.Observers {
		o.TransactionApplied(ctx, t, res)
	}
}
