package consensus

// ObservationMode distinguishes the two kinds of billable interaction with
// the consensus network.
type ObservationMode string

const (
	// ModeQuery marks a read, answered by a single node.
	ModeQuery ObservationMode = "QUERY"

	// ModeTransaction marks a state change that reaches consensus.
	ModeTransaction ObservationMode = "TRANSACTION"
)

// OperationType identifies a native operation for logging and metrics. The
// tag is attached explicitly at each call site; it is never inferred from a
// runtime type name, which keeps the metric label set closed.
type OperationType string

const (
	OpAccountBalanceQuery   OperationType = "AccountBalanceQuery"
	OpAccountInfoQuery      OperationType = "AccountInfoQuery"
	OpContractBytecodeQuery OperationType = "ContractBytecodeQuery"
	OpContractCallQuery     OperationType = "ContractCallQuery"
	OpFileContentsQuery     OperationType = "FileContentsQuery"
	OpEthereumTransaction   OperationType = "EthereumTransaction"
)

// Operation is the typed tag carried by every executor call: which mode the
// native call runs in and which operation it is.
type Operation struct {
	Mode ObservationMode
	Type OperationType
}

// query and transaction are shorthands for building operation tags.
func query(t OperationType) Operation {
	return Operation{Mode: ModeQuery, Type: t}
}

func transaction(t OperationType) Operation {
	return Operation{Mode: ModeTransaction, Type: t}
}
