package stub_test

import (
	"encoding/binary"
	"errors"
	"fmt"
	"testing"

	"github.com/anoideaopen/substitute/core"
	"github.com/anoideaopen/substitute/core/matcher"
	"github.com/anoideaopen/substitute/mock/stub"
	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-chaincode-go/shimtest"
	"github.com/stretchr/testify/require"
)

const balanceKey = "balance"

func putBalance(s shim.ChaincodeStubInterface, addr string, amount uint64) error {
	key, err := s.CreateCompositeKey(balanceKey, []string{addr})
	if err != nil {
		return err
	}

	return s.PutState(key, binary.BigEndian.AppendUint64(nil, amount))
}

func balance(s shim.ChaincodeStubInterface, addr string) (uint64, error) {
	key, err := s.CreateCompositeKey(balanceKey, []string{addr})
	if err != nil {
		return 0, err
	}

	raw, err := s.GetState(key)
	if err != nil {
		return 0, fmt.Errorf("reading balance of %s: %w", addr, err)
	}
	if len(raw) == 0 {
		return 0, nil
	}

	return binary.BigEndian.Uint64(raw), nil
}

// transfer is chaincode logic under test.
func transfer(s shim.ChaincodeStubInterface, from, to string, amount uint64) error {
	fromBalance, err := balance(s, from)
	if err != nil {
		return err
	}
	if fromBalance < amount {
		return errors.New("insufficient funds")
	}

	toBalance, err := balance(s, to)
	if err != nil {
		return err
	}

	if err = putBalance(s, from, fromBalance-amount); err != nil {
		return err
	}

	return putBalance(s, to, toBalance+amount)
}

func TestChaincodeStubZeroValues(t *testing.T) {
	s := stub.NewChaincodeStub(t)

	value, err := s.GetState("missing")
	require.NoError(t, err)
	require.Nil(t, value)

	fn, params := s.GetFunctionAndParameters()
	require.Empty(t, fn)
	require.Nil(t, params)

	resp := s.InvokeChaincode("other", nil, "")
	require.Equal(t, int32(0), resp.GetStatus())
	require.Nil(t, resp.GetPayload())
	require.Len(t, s.ReceivedCalls(), 3)
}

func TestChaincodeStubConfiguredState(t *testing.T) {
	s := stub.NewChaincodeStub(t)

	require.NoError(t, core.When(s, func(s *stub.ChaincodeStub) { s.GetTxID() }).Return("tx-1"))
	require.NoError(t, core.When(s, func(s *stub.ChaincodeStub) { s.GetState("k") }).Return([]byte("v")))
	require.NoError(t, core.WhenForAnyArgs(s, func(s *stub.ChaincodeStub) { s.GetFunctionAndParameters() }).
		Return("transfer", []string{"a", "b", "1"}))

	require.Equal(t, "tx-1", s.GetTxID())

	value, err := s.GetState("k")
	require.NoError(t, err)
	require.Equal(t, []byte("v"), value)

	fn, params := s.GetFunctionAndParameters()
	require.Equal(t, "transfer", fn)
	require.Equal(t, []string{"a", "b", "1"}, params)
}

func TestChaincodeStubThrow(t *testing.T) {
	s := stub.NewChaincodeStub(t)
	errUnavailable := errors.New("state unavailable")

	require.NoError(t, core.WhenForAnyArgs(s, func(s *stub.ChaincodeStub) { _ = s.PutState("", nil) }).Throw(errUnavailable))

	require.Same(t, errUnavailable, s.PutState("k", []byte("v")))
}

func TestTransferOnPartialStub(t *testing.T) {
	mockStub := shimtest.NewMockStub("fiat", nil)
	mockStub.MockTransactionStart("tx-1")
	defer mockStub.MockTransactionEnd("tx-1")

	s := stub.NewPartialChaincodeStub(t, mockStub)
	require.True(t, s.IsPartial())
	require.Equal(t, "fiat", s.Name())

	require.NoError(t, putBalance(s, "alice", 100))
	require.NoError(t, transfer(s, "alice", "bob", 30))

	aliceBalance, err := balance(mockStub, "alice")
	require.NoError(t, err)
	require.Equal(t, uint64(70), aliceBalance)

	bobBalance, err := balance(s, "bob")
	require.NoError(t, err)
	require.Equal(t, uint64(30), bobBalance)

	require.Equal(t, 3, s.ReceivedCount("PutState", matcher.AnyArguments()))
}

func TestTransferFailsWhenStateIsUnavailable(t *testing.T) {
	mockStub := shimtest.NewMockStub("fiat", nil)
	mockStub.MockTransactionStart("tx-1")
	defer mockStub.MockTransactionEnd("tx-1")

	s := stub.NewPartialChaincodeStub(t, mockStub)
	require.NoError(t, putBalance(s, "alice", 100))

	bobKey, err := mockStub.CreateCompositeKey(balanceKey, []string{"bob"})
	require.NoError(t, err)

	errUnavailable := errors.New("state unavailable")
	require.NoError(t, core.When(s, func(s *stub.ChaincodeStub) { _, _ = s.GetState(bobKey) }).Throw(errUnavailable))

	err = transfer(s, "alice", "bob", 30)
	require.ErrorIs(t, err, errUnavailable)

	// alice's balance is untouched
	aliceBalance, err := balance(mockStub, "alice")
	require.NoError(t, err)
	require.Equal(t, uint64(100), aliceBalance)
}

func TestPartialStubDoNotCallBase(t *testing.T) {
	mockStub := shimtest.NewMockStub("fiat", nil)
	mockStub.MockTransactionStart("tx-1")
	defer mockStub.MockTransactionEnd("tx-1")

	s := stub.NewPartialChaincodeStub(t, mockStub)
	require.NoError(t, s.PutState("k", []byte("v")))

	require.NoError(t, core.When(s, func(s *stub.ChaincodeStub) { _ = s.DelState("k") }).DoNotCallBase())
	require.NoError(t, s.DelState("k"))

	value, err := mockStub.GetState("k")
	require.NoError(t, err)
	require.Equal(t, []byte("v"), value)

	require.Equal(t, 1, s.ReceivedCountWith("DelState", "k"))
	require.Equal(t, 1, s.ReceivedCountWith("PutState", "k", []byte("v")))
}
