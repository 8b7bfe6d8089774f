package shell

const (
	dotRed    = "\033[31m●\033[0m"
	dotYellow = "\033[33m●\033[0m"
	dotGreen  = "\033[32m●\033[0m"
)

// banner is printed on start, on an empty line, on "help" and after an unknown command
var banner = "" +
	"╔══════════════════════════════════════════════════════════╗\n" +
	"║ " + dotRed + " " + dotYellow + " " + dotGreen + "                SMART HOME SIMULATOR                ║\n" +
	"╠══════════════════════════════════════════════════════════╣\n" +
	"║                                                          ║\n" +
	"║      Commands:                                           ║\n" +
	"║        status            – show home status              ║\n" +
	"║        enter <room>      – simulate entering             ║\n" +
	"║        time <day/night>  – change time of day            ║\n" +
	"║        time auto         – follow the sun                ║\n" +
	"║        outside <t>       – set outside temperature       ║\n" +
	"║        logs              – show event log                ║\n" +
	"║        history [s] [n]   – query the event ledger        ║\n" +
	"║        quit              – exit simulator                ║\n" +
	"║                                                          ║\n" +
	"╚══════════════════════════════════════════════════════════╝\n" +
	"\n"
