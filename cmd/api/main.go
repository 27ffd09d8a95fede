package main

// @title Support Relay APIs
// @version 1.0
// @description Support chat relay between site visitors and operators.

// @contact.name API Support

// @license.name Apache 2.0
// @license.url http://www.apache.org/licenses/LICENSE-2.0.html

// @host localhost:9090
// @BasePath /
// @schemes http
import (
	protocol "support-relay/protocal"

	_ "support-relay/docs"

	_ "github.com/arsmn/fiber-swagger/v2"
	"github.com/sirupsen/logrus"
)

func main() {
	err := protocol.ServeHTTP()
	if err != nil {
		logrus.Println(err)
	}
}
