package config

// DefaultValues is the base configuration every other file is merged onto.
// Values of the form {{Var}} are resolved from ZERO_Var in the environment or
// from the top level keys of the merged document.
const DefaultValues = `
PathRWData = "/tmp/zero"

[Log]
Environment = "development" # "production" or "development"
Level = "info"
Outputs = ["stderr"]

[Coordinator]
Addr = "0.0.0.0:8080"
QueueCapacity = 50
MaxRequestBodyBytes = 268435456
ReadHeaderTimeout = "10s"
ShutdownTimeout = "30s"
DBPath = "{{PathRWData}}/coordinator.sqlite"

[ObjectStore]
Endpoint = "storage.googleapis.com"
AccessKey = ""
SecretKey = ""
Region = "auto"
UseSSL = true

[ProofOutput]
Dir = "{{PathRWData}}/proofs"
Bucket = ""

[Prover]
CircuitDir = "{{PathRWData}}/circuits"

[Broker]
TaskQueue = "zero:tasks"
PollTimeout = "1s"
ResultTTL = "24h"
`
