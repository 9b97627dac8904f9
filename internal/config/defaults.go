package config

// DefaultConfigYAML is the configuration written by `devcontent init`.
const DefaultConfigYAML = `# devcontent configuration
#
# Values not specified here use built-in defaults. Every key can be
# overridden with a DEVCONTENT_* environment variable, for example
# DEVCONTENT_AGENT_API_KEY.

log:
  level: info    # debug, info, warn, error
  format: auto   # auto, text, json
  # file: .devcontent/devcontent.log

server:
  host: localhost
  port: 8080
  enable_cors: true
  cors_origins:
    - http://localhost:3000
    - http://localhost:5173

agent:
  # Agent service endpoint. Requests are POSTed as {"message", "agent_id"}.
  endpoint: http://localhost:3000/api/agent
  # api_key: set DEVCONTENT_AGENT_API_KEY instead of storing it here
  timeout: 5m
  ids:
    generate: 6997cb3dd5fa166f311285e2  # Content Strategy Coordinator
    deliver: 6997cb3ed223b2279bfea07a   # Content Delivery Agent
    analyze: 6997cb3eec13e822226888ea   # Engagement Optimizer
    scan: 6997cea0ea437a36da816328      # Trend Scout

console:
  sample_data: false
  default_view: dashboard  # dashboard, review, analytics, trends

report:
  # Session snapshot written as YAML on shutdown. Empty disables it.
  path: ""

events:
  buffer_size: 100

diagnostics:
  crash_dump:
    enabled: true
    dir: .devcontent/crashdumps
    max_files: 10
    include_stack: true
    include_env: false
`
