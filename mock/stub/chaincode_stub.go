// Package stub provides a substitute for shim.ChaincodeStubInterface.
//
// A ChaincodeStub records the calls chaincode code makes on its stub and answers them from
// configured routes. NewPartialChaincodeStub backs it with a shimtest.MockStub, so world
// state works as usual and only the configured calls are overridden:
//
//	mockStub := shimtest.NewMockStub("fiat", nil)
//	s := stub.NewPartialChaincodeStub(t, mockStub)
//
//	err := core.When(s, func(s *stub.ChaincodeStub) { s.GetState("frozen") }).
//	    Throw(errors.New("state unavailable"))
package stub

import (
	"context"
	"testing"

	"github.com/anoideaopen/substitute/core"
	"github.com/hyperledger/fabric-chaincode-go/shim"
	"github.com/hyperledger/fabric-chaincode-go/shimtest"
	pb "github.com/hyperledger/fabric-protos-go/peer"
	"github.com/stretchr/testify/require"
	"google.golang.org/protobuf/types/known/timestamppb"
)

var _ shim.ChaincodeStubInterface = (*ChaincodeStub)(nil)

// ChaincodeStub is a substitute for shim.ChaincodeStubInterface.
type ChaincodeStub struct {
	*core.Substitute
}

// NewChaincodeStub returns a chaincode stub substitute. Unconfigured calls return zero values.
func NewChaincodeStub(t testing.TB, opts ...core.Option) *ChaincodeStub {
	s, err := core.New[shim.ChaincodeStubInterface](opts...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Shutdown(context.Background()) })

	return &ChaincodeStub{Substitute: s}
}

// NewPartialChaincodeStub returns a chaincode stub substitute forwarding unconfigured calls
// to base.
func NewPartialChaincodeStub(t testing.TB, base *shimtest.MockStub, opts ...core.Option) *ChaincodeStub {
	return NewChaincodeStub(t, append([]core.Option{core.WithBase(base), core.WithName(base.Name)}, opts...)...)
}

func (s *ChaincodeStub) GetArgs() [][]byte {
	return core.Out[[][]byte](s.Invoke("GetArgs"), 0)
}

func (s *ChaincodeStub) GetStringArgs() []string {
	return core.Out[[]string](s.Invoke("GetStringArgs"), 0)
}

func (s *ChaincodeStub) GetFunctionAndParameters() (string, []string) {
	r := s.Invoke("GetFunctionAndParameters")
	return core.Out[string](r, 0), core.Out[[]string](r, 1)
}

func (s *ChaincodeStub) GetArgsSlice() ([]byte, error) {
	r := s.Invoke("GetArgsSlice")
	return core.Out[[]byte](r, 0), r.Err()
}

func (s *ChaincodeStub) GetTxID() string {
	return core.Out[string](s.Invoke("GetTxID"), 0)
}

func (s *ChaincodeStub) GetChannelID() string {
	return core.Out[string](s.Invoke("GetChannelID"), 0)
}

func (s *ChaincodeStub) InvokeChaincode(chaincodeName string, args [][]byte, channel string) pb.Response {
	return core.Out[pb.Response](s.Invoke("InvokeChaincode", chaincodeName, args, channel), 0)
}

func (s *ChaincodeStub) GetState(key string) ([]byte, error) {
	r := s.Invoke("GetState", key)
	return core.Out[[]byte](r, 0), r.Err()
}

func (s *ChaincodeStub) PutState(key string, value []byte) error {
	return s.Invoke("PutState", key, value).Err()
}

func (s *ChaincodeStub) DelState(key string) error {
	return s.Invoke("DelState", key).Err()
}

func (s *ChaincodeStub) SetStateValidationParameter(key string, ep []byte) error {
	return s.Invoke("SetStateValidationParameter", key, ep).Err()
}

func (s *ChaincodeStub) GetStateValidationParameter(key string) ([]byte, error) {
	r := s.Invoke("GetStateValidationParameter", key)
	return core.Out[[]byte](r, 0), r.Err()
}

func (s *ChaincodeStub) GetStateByRange(startKey, endKey string) (shim.StateQueryIteratorInterface, error) {
	r := s.Invoke("GetStateByRange", startKey, endKey)
	return core.Out[shim.StateQueryIteratorInterface](r, 0), r.Err()
}

func (s *ChaincodeStub) GetStateByRangeWithPagination(
	startKey, endKey string,
	pageSize int32,
	bookmark string,
) (shim.StateQueryIteratorInterface, *pb.QueryResponseMetadata, error) {
	r := s.Invoke("GetStateByRangeWithPagination", startKey, endKey, pageSize, bookmark)
	return core.Out[shim.StateQueryIteratorInterface](r, 0), core.Out[*pb.QueryResponseMetadata](r, 1), r.Err()
}

func (s *ChaincodeStub) GetStateByPartialCompositeKey(
	objectType string,
	keys []string,
) (shim.StateQueryIteratorInterface, error) {
	r := s.Invoke("GetStateByPartialCompositeKey", objectType, keys)
	return core.Out[shim.StateQueryIteratorInterface](r, 0), r.Err()
}

func (s *ChaincodeStub) GetStateByPartialCompositeKeyWithPagination(
	objectType string,
	keys []string,
	pageSize int32,
	bookmark string,
) (shim.StateQueryIteratorInterface, *pb.QueryResponseMetadata, error) {
	r := s.Invoke("GetStateByPartialCompositeKeyWithPagination", objectType, keys, pageSize, bookmark)
	return core.Out[shim.StateQueryIteratorInterface](r, 0), core.Out[*pb.QueryResponseMetadata](r, 1), r.Err()
}

func (s *ChaincodeStub) CreateCompositeKey(objectType string, attributes []string) (string, error) {
	r := s.Invoke("CreateCompositeKey", objectType, attributes)
	return core.Out[string](r, 0), r.Err()
}

func (s *ChaincodeStub) SplitCompositeKey(compositeKey string) (string, []string, error) {
	r := s.Invoke("SplitCompositeKey", compositeKey)
	return core.Out[string](r, 0), core.Out[[]string](r, 1), r.Err()
}

func (s *ChaincodeStub) GetQueryResult(query string) (shim.StateQueryIteratorInterface, error) {
	r := s.Invoke("GetQueryResult", query)
	return core.Out[shim.StateQueryIteratorInterface](r, 0), r.Err()
}

func (s *ChaincodeStub) GetQueryResultWithPagination(
	query string,
	pageSize int32,
	bookmark string,
) (shim.StateQueryIteratorInterface, *pb.QueryResponseMetadata, error) {
	r := s.Invoke("GetQueryResultWithPagination", query, pageSize, bookmark)
	return core.Out[shim.StateQueryIteratorInterface](r, 0), core.Out[*pb.QueryResponseMetadata](r, 1), r.Err()
}

func (s *ChaincodeStub) GetHistoryForKey(key string) (shim.HistoryQueryIteratorInterface, error) {
	r := s.Invoke("GetHistoryForKey", key)
	return core.Out[shim.HistoryQueryIteratorInterface](r, 0), r.Err()
}

func (s *ChaincodeStub) GetPrivateData(collection, key string) ([]byte, error) {
	r := s.Invoke("GetPrivateData", collection, key)
	return core.Out[[]byte](r, 0), r.Err()
}

func (s *ChaincodeStub) GetPrivateDataHash(collection, key string) ([]byte, error) {
	r := s.Invoke("GetPrivateDataHash", collection, key)
	return core.Out[[]byte](r, 0), r.Err()
}

func (s *ChaincodeStub) PutPrivateData(collection string, key string, value []byte) error {
	return s.Invoke("PutPrivateData", collection, key, value).Err()
}

func (s *ChaincodeStub) DelPrivateData(collection, key string) error {
	return s.Invoke("DelPrivateData", collection, key).Err()
}

func (s *ChaincodeStub) PurgePrivateData(collection, key string) error {
	return s.Invoke("PurgePrivateData", collection, key).Err()
}

func (s *ChaincodeStub) SetPrivateDataValidationParameter(collection, key string, ep []byte) error {
	return s.Invoke("SetPrivateDataValidationParameter", collection, key, ep).Err()
}

func (s *ChaincodeStub) GetPrivateDataValidationParameter(collection, key string) ([]byte, error) {
	r := s.Invoke("GetPrivateDataValidationParameter", collection, key)
	return core.Out[[]byte](r, 0), r.Err()
}

func (s *ChaincodeStub) GetPrivateDataByRange(collection, startKey, endKey string) (shim.StateQueryIteratorInterface, error) {
	r := s.Invoke("GetPrivateDataByRange", collection, startKey, endKey)
	return core.Out[shim.StateQueryIteratorInterface](r, 0), r.Err()
}

func (s *ChaincodeStub) GetPrivateDataByPartialCompositeKey(
	collection, objectType string,
	keys []string,
) (shim.StateQueryIteratorInterface, error) {
	r := s.Invoke("GetPrivateDataByPartialCompositeKey", collection, objectType, keys)
	return core.Out[shim.StateQueryIteratorInterface](r, 0), r.Err()
}

func (s *ChaincodeStub) GetPrivateDataQueryResult(collection, query string) (shim.StateQueryIteratorInterface, error) {
	r := s.Invoke("GetPrivateDataQueryResult", collection, query)
	return core.Out[shim.StateQueryIteratorInterface](r, 0), r.Err()
}

func (s *ChaincodeStub) GetCreator() ([]byte, error) {
	r := s.Invoke("GetCreator")
	return core.Out[[]byte](r, 0), r.Err()
}

func (s *ChaincodeStub) GetTransient() (map[string][]byte, error) {
	r := s.Invoke("GetTransient")
	return core.Out[map[string][]byte](r, 0), r.Err()
}

func (s *ChaincodeStub) GetBinding() ([]byte, error) {
	r := s.Invoke("GetBinding")
	return core.Out[[]byte](r, 0), r.Err()
}

func (s *ChaincodeStub) GetDecorations() map[string][]byte {
	return core.Out[map[string][]byte](s.Invoke("GetDecorations"), 0)
}

func (s *ChaincodeStub) GetSignedProposal() (*pb.SignedProposal, error) {
	r := s.Invoke("GetSignedProposal")
	return core.Out[*pb.SignedProposal](r, 0), r.Err()
}

func (s *ChaincodeStub) GetTxTimestamp() (*timestamppb.Timestamp, error) {
	r := s.Invoke("GetTxTimestamp")
	return core.Out[*timestamppb.Timestamp](r, 0), r.Err()
}

func (s *ChaincodeStub) SetEvent(name string, payload []byte) error {
	return s.Invoke("SetEvent", name, payload).Err()
}
