package enums

// ScanState is the lifecycle state of the barcode capture controller.
type ScanState string

const (
	ScanStateIdle       ScanState = "IDLE"
	ScanStateRequesting ScanState = "REQUESTING"
	ScanStateStreaming  ScanState = "STREAMING"
	ScanStateDecoded    ScanState = "DECODED"
	ScanStateStopped    ScanState = "STOPPED"
	ScanStateFailed     ScanState = "FAILED"
)

func (s ScanState) String() string {
	return string(s)
}
