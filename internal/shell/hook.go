package shell

// HookMarker는 rc 파일에 설치된 coal 통합 블록을 식별한다.
const HookMarker = "coal shell integration"

// HookSnippet은 coal 출력을 eval하는 래퍼 함수를 반환한다.
// 종료 코드는 보존되므로 호출자는 실패를 감지할 수 있다.
func HookSnippet(kind Kind) string {
	switch kind {
	case Bash, Zsh:
		return `# ` + HookMarker + ` (` + kind.String() + `)
coal() {
  local __coal_out __coal_rc
  __coal_out="$(command coal "$@")"
  __coal_rc=$?
  eval "$__coal_out"
  return $__coal_rc
}
`
	case Ksh:
		return `# ` + HookMarker + ` (ksh)
function coal {
  typeset __coal_out __coal_rc
  __coal_out="$(command coal "$@")"
  __coal_rc=$?
  eval "$__coal_out"
  return $__coal_rc
}
`
	case Tcsh:
		return `# ` + HookMarker + ` (tcsh)
alias coal 'eval "` + "`" + `\coal \!*` + "`" + `"'
`
	default:
		return ""
	}
}
