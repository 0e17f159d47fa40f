package main

import "github.com/CraigKelly/bayesreg/cmd"

// TODO: checkpointing for chains (so we can freeze and continue a long run) -
//       which means the generator state has to be serializable too

func main() {
	cmd.Execute()
}
