package api

import "fmt"

// Tool identifies a HackerTarget API operation. The numeric values are
// stable: they key the response cache and the query history.
type Tool int

const (
	ToolTraceroute Tool = iota + 1
	ToolPing
	ToolDNSLookup
	ToolReverseDNS
	ToolHostSearch
	ToolSharedDNS
	ToolZoneTransfer
	ToolWhois
	ToolGeoIP
	ToolReverseIP
	ToolPortScan
	ToolSubnetCalc
	ToolHTTPHeaders
	ToolPageLinks
)

var endpoints = map[Tool]string{
	ToolTraceroute:   "/mtr/",
	ToolPing:         "/nping/",
	ToolDNSLookup:    "/dnslookup/",
	ToolReverseDNS:   "/reversedns/",
	ToolHostSearch:   "/hostsearch/",
	ToolSharedDNS:    "/findshareddns/",
	ToolZoneTransfer: "/zonetransfer/",
	ToolWhois:        "/whois/",
	ToolGeoIP:        "/geoip/",
	ToolReverseIP:    "/reverseiplookup/",
	ToolPortScan:     "/nmap/",
	ToolSubnetCalc:   "/subnetcalc/",
	ToolHTTPHeaders:  "/httpheaders/",
	ToolPageLinks:    "/pagelinks/",
}

var names = map[Tool]string{
	ToolTraceroute:   "Traceroute (MTR)",
	ToolPing:         "Ping Test",
	ToolDNSLookup:    "DNS Lookup",
	ToolReverseDNS:   "Reverse DNS",
	ToolHostSearch:   "Find DNS Host",
	ToolSharedDNS:    "Find Shared DNS",
	ToolZoneTransfer: "Zone Transfer",
	ToolWhois:        "Whois Lookup",
	ToolGeoIP:        "IP Location Lookup",
	ToolReverseIP:    "Reverse IP Lookup",
	ToolPortScan:     "TCP Port Scan (Nmap)",
	ToolSubnetCalc:   "Subnet Lookup",
	ToolHTTPHeaders:  "HTTP Header Check",
	ToolPageLinks:    "Extract Page Links",
}

var aliases = map[string]Tool{
	"traceroute":   ToolTraceroute,
	"ping":         ToolPing,
	"dns":          ToolDNSLookup,
	"rdns":         ToolReverseDNS,
	"hostsearch":   ToolHostSearch,
	"shareddns":    ToolSharedDNS,
	"zonetransfer": ToolZoneTransfer,
	"whois":        ToolWhois,
	"geoip":        ToolGeoIP,
	"reverseip":    ToolReverseIP,
	"portscan":     ToolPortScan,
	"subnet":       ToolSubnetCalc,
	"headers":      ToolHTTPHeaders,
	"pagelinks":    ToolPageLinks,
}

// ID returns the numeric tool identifier.
func (t Tool) ID() int { return int(t) }

// Valid reports whether t maps to a known endpoint.
func (t Tool) Valid() bool {
	_, ok := endpoints[t]
	return ok
}

// Endpoint returns the API path for the tool.
func (t Tool) Endpoint() string { return endpoints[t] }

// Name returns the human-readable tool name.
func (t Tool) Name() string {
	if n, ok := names[t]; ok {
		return n
	}
	return fmt.Sprintf("Unknown Tool (%d)", int(t))
}

// ParseTool resolves a CLI alias such as "dns" or "portscan".
func ParseTool(alias string) (Tool, error) {
	t, ok := aliases[alias]
	if !ok {
		return 0, fmt.Errorf("unknown tool: %s", alias)
	}
	return t, nil
}

// ToolAliases returns all CLI aliases in tool-id order.
func ToolAliases() []string {
	out := make([]string, 0, len(aliases))
	for t := ToolTraceroute; t <= ToolPageLinks; t++ {
		for alias, tool := range aliases {
			if tool == t {
				out = append(out, alias)
			}
		}
	}
	return out
}
