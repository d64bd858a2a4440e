package cmd

import (
	"fmt"
	"io"
	"os"
)

type CompletionCmd struct {
	Shell string `arg:"" help:"Shell type: bash, zsh, or fish"`
}

func (c *CompletionCmd) Run() error {
	return writeCompletion(os.Stdout, c.Shell)
}

func writeCompletion(w io.Writer, shell string) error {
	var script string
	switch shell {
	case "bash":
		script = bashCompletion
	case "zsh":
		script = zshCompletion
	case "fish":
		script = fishCompletion
	default:
		return fmt.Errorf("unsupported shell: %s (supported: bash, zsh, fish)", shell)
	}
	_, err := io.WriteString(w, script)
	return err
}

const bashCompletion = `# bash completion for meshcombine

_meshcombine_completions() {
    local cur prev opts
    COMPREPLY=()
    cur="${COMP_WORDS[COMP_CWORD]}"
    prev="${COMP_WORDS[COMP_CWORD-1]}"

    # Main commands
    if [[ ${COMP_CWORD} -eq 1 ]]; then
        opts="combine inspect config version completion"
        COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
        return 0
    fi

    # Options for combine and config
    if [[ ${COMP_WORDS[1]} == "combine" || ${COMP_WORDS[1]} == "config" ]]; then
        case "${prev}" in
            --scene|--scene-output)
                COMPREPLY=( $(compgen -f -X '!*.@(gltf|glb)' -- ${cur}) )
                return 0
                ;;
            --asset-root|-o|--output-dir)
                COMPREPLY=( $(compgen -d -- ${cur}) )
                return 0
                ;;
            --index-format)
                COMPREPLY=( $(compgen -W "16 32" -- ${cur}) )
                return 0
                ;;
            --log-level)
                COMPREPLY=( $(compgen -W "debug info warn error" -- ${cur}) )
                return 0
                ;;
            -r|--root|--log-file)
                return 0
                ;;
            *)
                if [[ ${cur} == -* ]]; then
                    opts="--scene -r --root --asset-root -o --output-dir --index-format --secondary-uvs --no-secondary-uvs --scene-output --log-level --log-file -h --help"
                    if [[ ${COMP_WORDS[1]} == "combine" ]]; then
                        opts="${opts} -n --dry-run -v --verbose"
                    fi
                    COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
                else
                    COMPREPLY=( $(compgen -f -X '!*.@(yaml|yml)' -- ${cur}) )
                fi
                return 0
                ;;
        esac
    fi

    # Options for inspect command
    if [[ ${COMP_WORDS[1]} == "inspect" ]]; then
        if [[ ${cur} == -* ]]; then
            opts="--dump -h --help"
            COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
        else
            COMPREPLY=( $(compgen -f -X '!*.@(gltf|glb)' -- ${cur}) )
        fi
        return 0
    fi

    # Options for completion command
    if [[ ${COMP_WORDS[1]} == "completion" ]]; then
        if [[ ${COMP_CWORD} -eq 2 ]]; then
            opts="bash zsh fish"
            COMPREPLY=( $(compgen -W "${opts}" -- ${cur}) )
        fi
        return 0
    fi
}

complete -F _meshcombine_completions meshcombine
`

const zshCompletion = `#compdef meshcombine

_meshcombine() {
    local -a commands
    commands=(
        'combine:Combine the meshes below a root object into one mesh per material'
        'inspect:Inspect a glTF scene'
        'config:Show the resolved job configuration'
        'version:Show version information'
        'completion:Generate shell completion script'
    )

    local -a job_opts
    job_opts=(
        '--scene[Source scene]:scene:_files -g "*.{gltf,glb}"'
        '(-r --root)'{-r,--root}'[Root object]:name:'
        '--asset-root[Asset root directory]:directory:_directories'
        '(-o --output-dir)'{-o,--output-dir}'[Output directory below the asset root]:directory:'
        '--index-format[Index format]:format:(16 32)'
        '--secondary-uvs[Generate secondary UVs]'
        '--no-secondary-uvs[Do not generate secondary UVs]'
        '--scene-output[Write the scene with the result added]:scene:_files -g "*.{gltf,glb}"'
        '--log-level[Log level]:level:(debug info warn error)'
        '--log-file[JSON log file]:log file:_files'
        '(-h --help)'{-h,--help}'[Show help]'
        '*:job file:_files -g "*.{yaml,yml}"'
    )

    local -a combine_opts
    combine_opts=(
        $job_opts
        '(-n --dry-run)'{-n,--dry-run}'[Combine in memory only]'
        '(-v --verbose)'{-v,--verbose}'[Print every build step]'
    )

    local -a inspect_opts
    inspect_opts=(
        '--dump[Dump the object tree]'
        '(-h --help)'{-h,--help}'[Show help]'
        '*:scene:_files -g "*.{gltf,glb}"'
    )

    local -a completion_shells
    completion_shells=(
        'bash:Generate bash completion'
        'zsh:Generate zsh completion'
        'fish:Generate fish completion'
    )

    _arguments -C \
        '1: :->command' \
        '*:: :->args'

    case $state in
        command)
            _describe 'command' commands
            ;;
        args)
            case $words[1] in
                combine)
                    _arguments $combine_opts
                    ;;
                config)
                    _arguments $job_opts
                    ;;
                inspect)
                    _arguments $inspect_opts
                    ;;
                completion)
                    _describe 'shell' completion_shells
                    ;;
                version)
                    _arguments '(-h --help)'{-h,--help}'[Show help]'
                    ;;
            esac
            ;;
    esac
}

_meshcombine
`

const fishCompletion = `# fish completion for meshcombine

# Main commands
complete -c meshcombine -f -n "__fish_use_subcommand" -a "combine" -d "Combine the meshes below a root object"
complete -c meshcombine -f -n "__fish_use_subcommand" -a "inspect" -d "Inspect a glTF scene"
complete -c meshcombine -f -n "__fish_use_subcommand" -a "config" -d "Show the resolved job configuration"
complete -c meshcombine -f -n "__fish_use_subcommand" -a "version" -d "Show version information"
complete -c meshcombine -f -n "__fish_use_subcommand" -a "completion" -d "Generate shell completion script"

# combine and config options
complete -c meshcombine -f -n "__fish_seen_subcommand_from combine config" -l scene -d "Source scene" -r -a "(__fish_complete_suffix .gltf .glb)"
complete -c meshcombine -f -n "__fish_seen_subcommand_from combine config" -s r -l root -d "Root object" -r
complete -c meshcombine -f -n "__fish_seen_subcommand_from combine config" -l asset-root -d "Asset root directory" -r -a "(__fish_complete_directories)"
complete -c meshcombine -f -n "__fish_seen_subcommand_from combine config" -s o -l output-dir -d "Output directory below the asset root" -r
complete -c meshcombine -f -n "__fish_seen_subcommand_from combine config" -l index-format -d "Index format" -r -a "16 32"
complete -c meshcombine -f -n "__fish_seen_subcommand_from combine config" -l secondary-uvs -d "Generate secondary UVs"
complete -c meshcombine -f -n "__fish_seen_subcommand_from combine config" -l no-secondary-uvs -d "Do not generate secondary UVs"
complete -c meshcombine -f -n "__fish_seen_subcommand_from combine config" -l scene-output -d "Write the scene with the result added" -r
complete -c meshcombine -f -n "__fish_seen_subcommand_from combine config" -l log-level -d "Log level" -r -a "debug info warn error"
complete -c meshcombine -f -n "__fish_seen_subcommand_from combine config" -l log-file -d "JSON log file" -r
complete -c meshcombine -f -n "__fish_seen_subcommand_from combine" -s n -l dry-run -d "Combine in memory only"
complete -c meshcombine -f -n "__fish_seen_subcommand_from combine" -s v -l verbose -d "Print every build step"
complete -c meshcombine -n "__fish_seen_subcommand_from combine config" -a "(__fish_complete_suffix .yaml)" -d "Job file"

# inspect command options
complete -c meshcombine -f -n "__fish_seen_subcommand_from inspect" -l dump -d "Dump the object tree"
complete -c meshcombine -n "__fish_seen_subcommand_from inspect" -a "(__fish_complete_suffix .gltf .glb)" -d "glTF file"

# completion command options
complete -c meshcombine -f -n "__fish_seen_subcommand_from completion" -a "bash" -d "Generate bash completion"
complete -c meshcombine -f -n "__fish_seen_subcommand_from completion" -a "zsh" -d "Generate zsh completion"
complete -c meshcombine -f -n "__fish_seen_subcommand_from completion" -a "fish" -d "Generate fish completion"
`

func (c *CompletionCmd) Help() string {
	return `
Generate shell completion scripts for meshcombine.

Examples:
  # Bash
  meshcombine completion bash > ~/.local/share/bash-completion/completions/meshcombine

  # Zsh
  meshcombine completion zsh > ~/.zsh/completion/_meshcombine

  # Fish
  meshcombine completion fish > ~/.config/fish/completions/meshcombine.fish
`
}
