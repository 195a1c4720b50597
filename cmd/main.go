package main

import (
	"github.com/ethan-devlab/RMRS-Deploy/config"
	"github.com/ethan-devlab/RMRS-Deploy/routes"
	"github.com/ethan-devlab/RMRS-Deploy/utils"
)

func main() {
	config.InitDB()
	utils.InitS3()
	utils.InitSES()
	r := routes.SetupRouter()
	r.Run(":8080")
}
