package chain

import (
	"context"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"monad-minesweeper/internal/config"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/accounts/abi/bind"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"
	"github.com/ethereum/go-ethereum/crypto"
	"github.com/ethereum/go-ethereum/ethclient"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

const contractABI = `[{
	"inputs": [
		{"internalType": "address", "name": "player", "type": "address"},
		{"internalType": "uint256", "name": "scoreAmount", "type": "uint256"},
		{"internalType": "uint256", "name": "transactionAmount", "type": "uint256"}
	],
	"name": "updatePlayerData",
	"outputs": [],
	"stateMutability": "nonpayable",
	"type": "function"
}]`

const methodUpdatePlayerData = "updatePlayerData"

var (
	ErrScoreSubmissionFailed = errors.New("score submission failed")
	ErrInvalidSubmission     = errors.New("invalid parameters: playerAddress and scoreAmount required, scoreAmount > 0")
	ErrNotConfigured         = fmt.Errorf("%w: server configuration incomplete", ErrScoreSubmissionFailed)
)

// Receipt mirrors the JSON contract of the update-player-data route.
type Receipt struct {
	Success         bool   `json:"success"`
	TransactionHash string `json:"transactionHash,omitempty"`
	Message         string `json:"message,omitempty"`
	Error           string `json:"error,omitempty"`
}

// Submitter records a finished round's score on chain.
type Submitter interface {
	SubmitScore(ctx context.Context, player string, score int) (Receipt, error)
}

type scoreContract interface {
	Transact(opts *bind.TransactOpts, method string, params ...interface{}) (*types.Transaction, error)
}

type balanceReader interface {
	BalanceAt(ctx context.Context, account common.Address, blockNumber *big.Int) (*big.Int, error)
}

// ContractSubmitter signs updatePlayerData calls with the game wallet.
type ContractSubmitter struct {
	contract scoreContract
	balances balanceReader
	signer   *bind.TransactOpts
	log      *zap.Logger
	close    func()
}

func NewContractSubmitter(ctx context.Context, cfg config.Chain, logger *zap.Logger) (*ContractSubmitter, error) {
	if !cfg.Complete() {
		return nil, ErrNotConfigured
	}
	if !common.IsHexAddress(cfg.ContractAddress) {
		return nil, fmt.Errorf("invalid contract address %q", cfg.ContractAddress)
	}
	key, err := crypto.HexToECDSA(strings.TrimPrefix(cfg.PrivateKey, "0x"))
	if err != nil {
		return nil, fmt.Errorf("parse game wallet key: %w", err)
	}
	signer, err := bind.NewKeyedTransactorWithChainID(key, big.NewInt(cfg.ChainID))
	if err != nil {
		return nil, fmt.Errorf("build transactor: %w", err)
	}
	parsed, err := abi.JSON(strings.NewReader(contractABI))
	if err != nil {
		return nil, fmt.Errorf("parse contract abi: %w", err)
	}
	client, err := ethclient.DialContext(ctx, cfg.RPCURL)
	if err != nil {
		return nil, fmt.Errorf("dial rpc: %w", err)
	}

	contract := bind.NewBoundContract(common.HexToAddress(cfg.ContractAddress), parsed, client, client, client)
	s := newContractSubmitter(contract, client, signer, logger)
	s.close = client.Close
	return s, nil
}

func newContractSubmitter(contract scoreContract, balances balanceReader, signer *bind.TransactOpts, logger *zap.Logger) *ContractSubmitter {
	return &ContractSubmitter{
		contract: contract,
		balances: balances,
		signer:   signer,
		log:      logger.Named("chain"),
		close:    func() {},
	}
}

func (s *ContractSubmitter) Close() { s.close() }

func (s *ContractSubmitter) SubmitScore(ctx context.Context, player string, score int) (Receipt, error) {
	if player == "" || score <= 0 || !common.IsHexAddress(player) {
		return Receipt{Error: ErrInvalidSubmission.Error()}, ErrInvalidSubmission
	}

	balance, err := s.balances.BalanceAt(ctx, s.signer.From, nil)
	if err != nil {
		return s.fail(player, score, err)
	}
	s.log.Debug("signer balance",
		zap.String("signer", s.signer.From.Hex()),
		zap.String("mon", decimal.NewFromBigInt(balance, -18).String()))
	if balance.Sign() == 0 {
		return s.fail(player, score, errors.New("insufficient funds for gas * price + value"))
	}

	opts := *s.signer
	opts.Context = ctx
	tx, err := s.contract.Transact(&opts, methodUpdatePlayerData,
		common.HexToAddress(player), big.NewInt(int64(score)), big.NewInt(1))
	if err != nil {
		return s.fail(player, score, err)
	}

	hash := tx.Hash().Hex()
	s.log.Info("score submitted",
		zap.String("player", player),
		zap.Int("score", score),
		zap.String("tx", hash))
	return Receipt{
		Success:         true,
		TransactionHash: hash,
		Message:         "Score saved to blockchain successfully",
	}, nil
}

func (s *ContractSubmitter) fail(player string, score int, err error) (Receipt, error) {
	msg := UserMessage(err)
	s.log.Error("score submission failed",
		zap.String("player", player),
		zap.Int("score", score),
		zap.Error(err))
	return Receipt{Error: msg}, fmt.Errorf("%w: %s", ErrScoreSubmissionFailed, msg)
}

// UserMessage maps a transaction error to the text shown to the player.
func UserMessage(err error) string {
	if err == nil {
		return "Failed to save score"
	}
	msg := err.Error()
	switch {
	case strings.Contains(msg, "insufficient funds"):
		return "Insufficient funds to complete transaction"
	case strings.Contains(msg, "execution reverted"):
		return "Contract execution failed - check permissions"
	case strings.Contains(msg, "AccessControlUnauthorizedAccount"):
		return "Unauthorized: Wallet does not have required permissions"
	}
	return msg
}

// DisabledSubmitter is used when the chain settings are missing.
type DisabledSubmitter struct{}

func (DisabledSubmitter) SubmitScore(ctx context.Context, player string, score int) (Receipt, error) {
	if player == "" || score <= 0 {
		return Receipt{Error: ErrInvalidSubmission.Error()}, ErrInvalidSubmission
	}
	return Receipt{Error: "Server configuration incomplete"}, ErrNotConfigured
}
