package library

const (
	//MasterYarn cluster scheduler master name
	MasterYarn = "yarn"
	//DeployModeCluster cluster submission
	DeployModeCluster = "cluster"
	//DeployModeClient client submission
	DeployModeClient = "client"
)

type (
	//Mode represents cluster submission topology
	Mode int
	//Role represents process role
	Role int
	//Action represents reference resolution action
	Action int
)

const (
	//Standalone local or standalone deployment
	Standalone Mode = iota
	//ClientSubmitted distributed deployment submitted in client mode
	ClientSubmitted
	//ClusterSubmitted distributed deployment submitted in cluster mode
	ClusterSubmitted
)

const (
	//Worker executor process
	Worker Role = iota
	//Coordinator driver process
	Coordinator
)

const (
	//ActionFetch fetches reference into workspace
	ActionFetch Action = iota
	//ActionPassThrough keeps reference as is, job submission places it in working directory
	ActionPassThrough
	//ActionResolveFilesDir resolves reference against materialized files directory
	ActionResolveFilesDir
	//ActionReject rejects reference
	ActionReject
)

//ModeOf returns deployment mode for master and deploy mode
func ModeOf(master, deployMode string) Mode {
	if master != MasterYarn {
		return Standalone
	}
	switch deployMode {
	case DeployModeCluster:
		return ClusterSubmitted
	case DeployModeClient:
		return ClientSubmitted
	}
	return Standalone
}

//Plan returns resolution action for every mode, role and reference kind
func Plan(mode Mode, role Role, kind Kind) Action {
	if kind == Absolute {
		return ActionFetch
	}
	switch mode {
	case ClientSubmitted:
		if role == Coordinator {
			return ActionReject
		}
		return ActionPassThrough
	case ClusterSubmitted:
		return ActionPassThrough
	}
	return ActionResolveFilesDir
}

func (m Mode) String() string {
	switch m {
	case ClientSubmitted:
		return "client-submitted"
	case ClusterSubmitted:
		return "cluster-submitted"
	}
	return "standalone"
}

func (r Role) String() string {
	if r == Coordinator {
		return "coordinator"
	}
	return "worker"
}

func (a Action) String() string {
	switch a {
	case ActionPassThrough:
		return "pass-through"
	case ActionResolveFilesDir:
		return "resolve-files-dir"
	case ActionReject:
		return "reject"
	}
	return "fetch"
}
