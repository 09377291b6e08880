package codewrap

// SplitArgs classifies an ordered argument list into the caller-supplied
// subset (Input and InOut) and the produced subset (Output and InOut), each
// preserving the original relative order. An InOut argument appears in both.
//
// The rule is shared by every backend so that identical routines get
// identical calling conventions regardless of toolchain.
func SplitArgs(args []Argument) (callerInputs, producedResults []Argument) {
	for _, a := range args {
		switch a.Kind {
		case Output:
			producedResults = append(producedResults, a)
		case InOut:
			callerInputs = append(callerInputs, a)
			producedResults = append(producedResults, a)
		default:
			callerInputs = append(callerInputs, a)
		}
	}
	return callerInputs, producedResults
}
