package types

// MachineState represents the state reported by an event interval.
type MachineState string

// MachineState values enumerate the machine states recorded by the shop floor.
const (
	StateRun  MachineState = "RUN"
	StateDown MachineState = "DOWN"
	StateIdle MachineState = "IDLE"
)

// ReasonBreakdown is the downtime reason code that marks an unplanned
// breakdown. It drives failure labeling for the maintenance model.
const ReasonBreakdown = "BREAKDOWN"

// StepStatus represents the lifecycle state of an order step.
type StepStatus string

// StepStatus values enumerate the order-step lifecycle states.
const (
	StepNotStarted StepStatus = "NOT_STARTED"
	StepInProgress StepStatus = "IN_PROGRESS"
	StepCompleted  StepStatus = "COMPLETED"
)

// OrderStatus is the rollup status of an order across its steps.
type OrderStatus string

// OrderStatus values enumerate the order rollup states.
const (
	OrderNotStarted OrderStatus = "NOT_STARTED"
	OrderInProgress OrderStatus = "IN_PROGRESS"
	OrderCompleted  OrderStatus = "COMPLETED"
)

// ModelType selects the maintenance-model variant to train.
type ModelType string

// ModelType values enumerate the supported model variants.
const (
	ModelLogReg ModelType = "logreg"
	ModelForest ModelType = "rf"
)

// RiskLevel is the categorical tier derived from a composite health score.
type RiskLevel string

// RiskLevel values order from healthiest to least healthy.
const (
	RiskLow    RiskLevel = "Low"
	RiskMedium RiskLevel = "Medium"
	RiskHigh   RiskLevel = "High"
)

// AlertType defines the alert sink type.
type AlertType string

// AlertType values enumerate the supported alert sink backends.
const (
	AlertConsole AlertType = "console"
	AlertWebhook AlertType = "webhook"
	AlertFile    AlertType = "file"
)

// AlertLevel classifies alert severity.
type AlertLevel string

const (
	AlertLevelError   AlertLevel = "error"
	AlertLevelWarning AlertLevel = "warning"
	AlertLevelInfo    AlertLevel = "info"
)
