package cli

import (
	"fmt"
)

// CompletionCmd generates shell completions
type CompletionCmd struct {
	Shell string `arg:"" enum:"bash,zsh,fish" help:"Shell type (bash, zsh, fish)"`
}

// Run executes the completion command
func (c *CompletionCmd) Run(globals *Globals) error {
	switch c.Shell {
	case "bash":
		return c.generateBash(globals)
	case "zsh":
		return c.generateZsh(globals)
	case "fish":
		return c.generateFish(globals)
	default:
		return fmt.Errorf("unsupported shell: %s", c.Shell)
	}
}

func (c *CompletionCmd) generateBash(globals *Globals) error {
	script := `# osbench bash completion script
# Add to ~/.bashrc or ~/.bash_profile:
#   eval "$(osbench completion bash)"

_osbench_completions() {
    local cur prev words cword
    _init_completion || return

    local commands="generate load search mapping analyze doctor config examples version completion"
    local global_flags="-f --format -q --quiet -v --verbose"
    local conn_flags="--host --port --user --password --ssl --no-ssl --url --retries --timeout"

    case "${prev}" in
        osbench)
            COMPREPLY=($(compgen -W "${commands}" -- "${cur}"))
            return
            ;;
        -f|--format)
            COMPREPLY=($(compgen -W "text ndjson" -- "${cur}"))
            return
            ;;
        -m|--mapping|mapping)
            COMPREPLY=($(compgen -W "0 1 2 3 dynamic disabled templates object" -- "${cur}"))
            return
            ;;
        -o|--out|--save|analyze)
            _filedir
            return
            ;;
        config)
            COMPREPLY=($(compgen -W "show path generate" -- "${cur}"))
            return
            ;;
        completion)
            COMPREPLY=($(compgen -W "bash zsh fish" -- "${cur}"))
            return
            ;;
    esac

    case "${words[1]}" in
        generate)
            COMPREPLY=($(compgen -W "-r --records --fields -o --out --seed --verify ${global_flags}" -- "${cur}"))
            ;;
        load)
            COMPREPLY=($(compgen -W "-i --index -n --indices -r --records --fields --rounds -m --mapping --field-limit --flush-bytes --save --seed ${conn_flags} ${global_flags}" -- "${cur}"))
            ;;
        search)
            COMPREPLY=($(compgen -W "-r --rounds ${conn_flags} ${global_flags}" -- "${cur}"))
            ;;
        doctor)
            COMPREPLY=($(compgen -W "${conn_flags} ${global_flags}" -- "${cur}"))
            ;;
        analyze)
            COMPREPLY=($(compgen -W "--dir --pattern ${global_flags}" -- "${cur}"))
            ;;
        *)
            COMPREPLY=($(compgen -W "${commands} ${global_flags}" -- "${cur}"))
            ;;
    esac
}

complete -F _osbench_completions osbench
`
	_, err := fmt.Fprint(globals.Stdout, script)
	return err
}

func (c *CompletionCmd) generateZsh(globals *Globals) error {
	script := `#compdef osbench
# osbench zsh completion script
# Add to ~/.zshrc:
#   eval "$(osbench completion zsh)"

_osbench() {
    local -a commands
    commands=(
        'generate:Write generated mock log documents to a JSONL file'
        'load:Create indices, bulk load generated documents and benchmark search'
        'search:Benchmark search latency against an existing index'
        'mapping:Print the index creation body for a mapping mode'
        'analyze:Summarize a graph traversal benchmark results file'
        'doctor:Check cluster connectivity and configuration'
        'config:Show or manage configuration'
        'examples:Show usage examples'
        'version:Show version information'
        'completion:Generate shell completions'
    )

    local -a global_opts
    global_opts=(
        '(-f --format)'{-f,--format}'[Output format]:format:(text ndjson)'
        '(-q --quiet)'{-q,--quiet}'[Suppress progress logging]'
        '(-v --verbose)'{-v,--verbose}'[Show debug logging]'
    )

    local -a conn_opts
    conn_opts=(
        '--host[OpenSearch host]:host:_hosts'
        '--port[OpenSearch port]:port:'
        '--user[OpenSearch username]:user:'
        '--password[OpenSearch password]:password:'
        '--ssl[Connect over HTTPS]'
        '--no-ssl[Connect over HTTP]'
        '--url[Full cluster URL]:url:'
        '--retries[Retries on 429/502/503/504]:retries:'
        '--timeout[Per-request timeout]:duration:'
    )

    _arguments -C \
        $global_opts \
        '1: :->command' \
        '*:: :->args'

    case $state in
        command)
            _describe 'command' commands
            ;;
        args)
            case $words[1] in
                generate)
                    _arguments \
                        '(-r --records)'{-r,--records}'[Number of documents]:records:' \
                        '--fields[Random fields per log object]:fields:' \
                        '(-o --out)'{-o,--out}'[Output path]:file:_files' \
                        '--seed[Random seed]:seed:' \
                        '--verify[Read the file back]' \
                        $global_opts
                    ;;
                load)
                    _arguments \
                        '(-i --index)'{-i,--index}'[Index name prefix]:prefix:' \
                        '(-n --indices)'{-n,--indices}'[Number of indices]:count:' \
                        '(-r --records)'{-r,--records}'[Documents per index]:records:' \
                        '--fields[Random fields per log object]:fields:' \
                        '--rounds[Search rounds per index]:rounds:' \
                        '(-m --mapping)'{-m,--mapping}'[Mapping mode]:mode:(0 1 2 3 dynamic disabled templates object)' \
                        '--field-limit[Total fields limit]:limit:' \
                        '--flush-bytes[Bulk request size threshold]:bytes:' \
                        '--save[Also write documents to file]:file:_files' \
                        '--seed[Random seed]:seed:' \
                        $conn_opts \
                        $global_opts
                    ;;
                search)
                    _arguments \
                        '1:index:' \
                        '(-r --rounds)'{-r,--rounds}'[Number of searches]:rounds:' \
                        $conn_opts \
                        $global_opts
                    ;;
                doctor)
                    _arguments $conn_opts $global_opts
                    ;;
                mapping)
                    _arguments \
                        '1:mode:(0 1 2 3 dynamic disabled templates object)' \
                        '--field-limit[Total fields limit]:limit:' \
                        '--list[List every mode]' \
                        $global_opts
                    ;;
                analyze)
                    _arguments \
                        '1:results file:_files -g "*.json"' \
                        '--dir[Directory to search]:dir:_directories' \
                        '--pattern[Results file glob]:pattern:' \
                        $global_opts
                    ;;
                config)
                    _arguments '1:action:(show path generate)'
                    ;;
                completion)
                    _arguments '1:shell:(bash zsh fish)'
                    ;;
            esac
            ;;
    esac
}

compdef _osbench osbench
`
	_, err := fmt.Fprint(globals.Stdout, script)
	return err
}

func (c *CompletionCmd) generateFish(globals *Globals) error {
	script := `# osbench fish completion script
# Add to ~/.config/fish/completions/osbench.fish

# Disable file completion by default
complete -c osbench -f

# Commands
complete -c osbench -n "__fish_use_subcommand" -a "generate" -d "Write generated mock log documents to a JSONL file"
complete -c osbench -n "__fish_use_subcommand" -a "load" -d "Create indices, bulk load and benchmark search"
complete -c osbench -n "__fish_use_subcommand" -a "search" -d "Benchmark search latency against an existing index"
complete -c osbench -n "__fish_use_subcommand" -a "mapping" -d "Print the index creation body for a mapping mode"
complete -c osbench -n "__fish_use_subcommand" -a "analyze" -d "Summarize a benchmark results file"
complete -c osbench -n "__fish_use_subcommand" -a "doctor" -d "Check cluster connectivity and configuration"
complete -c osbench -n "__fish_use_subcommand" -a "config" -d "Show or manage configuration"
complete -c osbench -n "__fish_use_subcommand" -a "examples" -d "Show usage examples"
complete -c osbench -n "__fish_use_subcommand" -a "version" -d "Show version information"
complete -c osbench -n "__fish_use_subcommand" -a "completion" -d "Generate shell completions"

# Global flags
complete -c osbench -s f -l format -d "Output format" -xa "text ndjson"
complete -c osbench -s q -l quiet -d "Suppress progress logging"
complete -c osbench -s v -l verbose -d "Show debug logging"

# Connection flags
complete -c osbench -n "__fish_seen_subcommand_from load search doctor" -l host -d "OpenSearch host" -x
complete -c osbench -n "__fish_seen_subcommand_from load search doctor" -l port -d "OpenSearch port" -x
complete -c osbench -n "__fish_seen_subcommand_from load search doctor" -l user -d "OpenSearch username" -x
complete -c osbench -n "__fish_seen_subcommand_from load search doctor" -l password -d "OpenSearch password" -x
complete -c osbench -n "__fish_seen_subcommand_from load search doctor" -l ssl -d "Connect over HTTPS"
complete -c osbench -n "__fish_seen_subcommand_from load search doctor" -l url -d "Full cluster URL" -x

# Generate command
complete -c osbench -n "__fish_seen_subcommand_from generate" -s r -l records -d "Number of documents" -x
complete -c osbench -n "__fish_seen_subcommand_from generate" -l fields -d "Random fields per log object" -x
complete -c osbench -n "__fish_seen_subcommand_from generate" -s o -l out -d "Output path" -r -F
complete -c osbench -n "__fish_seen_subcommand_from generate" -l verify -d "Read the file back"

# Load command
complete -c osbench -n "__fish_seen_subcommand_from load" -s i -l index -d "Index name prefix" -x
complete -c osbench -n "__fish_seen_subcommand_from load" -s n -l indices -d "Number of indices" -x
complete -c osbench -n "__fish_seen_subcommand_from load" -s m -l mapping -d "Mapping mode" -xa "0 1 2 3 dynamic disabled templates object"
complete -c osbench -n "__fish_seen_subcommand_from load" -l save -d "Also write documents to file" -r -F

# Mapping command
complete -c osbench -n "__fish_seen_subcommand_from mapping" -a "0 1 2 3 dynamic disabled templates object"

# Analyze command
complete -c osbench -n "__fish_seen_subcommand_from analyze" -F

# Config and completion
complete -c osbench -n "__fish_seen_subcommand_from config" -a "show path generate"
complete -c osbench -n "__fish_seen_subcommand_from completion" -a "bash zsh fish"
`
	_, err := fmt.Fprint(globals.Stdout, script)
	return err
}
